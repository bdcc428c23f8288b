// Package searchurl builds LinkedIn job search URLs from structured
// parameters, so the discovery stage can be pointed at a reproducible query.
package searchurl

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const baseURL = "https://www.linkedin.com/jobs/search/"

// Params are the supported LinkedIn job search filters.
type Params struct {
	Keywords string `json:"keywords"`
	GeoID    string `json:"geoId"`
	Location string `json:"location"`
	Distance int    `json:"distance"`

	// TimePosted maps to f_TPR: "" any time, "r86400" past day,
	// "r604800" past week, "r2592000" past month.
	TimePosted string `json:"f_TPR"`

	// SortBy is "R" for relevance or "DD" for date posted.
	SortBy string `json:"sortBy"`

	// ExperienceLevel maps to f_E: 1 internship through 6 executive.
	ExperienceLevel int `json:"f_E"`

	// SalaryBand maps to f_SB2: 1 for $40k+ through 9 for $200k+.
	SalaryBand int `json:"f_SB2"`

	Origin       string `json:"origin"`
	Refresh      bool   `json:"refresh"`
	CurrentJobID string `json:"currentJobId,omitempty"`
}

// DefaultParams mirrors the defaults of the original search: mid-senior AI
// engineer roles in the United States posted in the last day.
func DefaultParams() Params {
	return Params{
		Keywords:        "AI Engineer",
		GeoID:           "103644278",
		Location:        "United States",
		Distance:        25,
		TimePosted:      "r86400",
		SortBy:          "R",
		ExperienceLevel: 4,
		SalaryBand:      1,
		Origin:          "JOB_SEARCH_PAGE_JOB_FILTER",
		Refresh:         true,
	}
}

// Build renders the search URL. Parameters are emitted in a stable order and
// spaces are percent-encoded (not '+') to match what the site itself issues.
func (p Params) Build() string {
	pairs := map[string]string{
		"keywords": p.Keywords,
		"geoId":    p.GeoID,
		"location": p.Location,
		"distance": strconv.Itoa(p.Distance),
		"sortBy":   p.SortBy,
		"f_E":      strconv.Itoa(p.ExperienceLevel),
		"f_SB2":    strconv.Itoa(p.SalaryBand),
		"origin":   p.Origin,
		"refresh":  strconv.FormatBool(p.Refresh),
	}
	if p.TimePosted != "" {
		pairs["f_TPR"] = p.TimePosted
	}
	if p.CurrentJobID != "" {
		pairs["currentJobId"] = p.CurrentJobID
	}

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		if pairs[k] != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+escape(pairs[k]))
	}

	return baseURL + "?" + strings.Join(parts, "&")
}

// escape percent-encodes a query value with %20 for spaces.
func escape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
