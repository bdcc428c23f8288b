// Package types provides type definitions for the records that flow through
// the job-match pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// JobRecord represents a single job posting as it moves through the pipeline.
// Discovery produces it with identifying fields only; Enrichment attaches the
// description and fills in any info fields the job list view did not expose.
type JobRecord struct {
	JobID       string  `json:"job_id"`
	URL         string  `json:"url"`
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Location    *string `json:"location"`
	Description string  `json:"description,omitempty"`
	Timestamp   float64 `json:"timestamp"`
}

// HasDescription reports whether the record carries a non-empty description.
func (j *JobRecord) HasDescription() bool {
	return strings.TrimSpace(j.Description) != ""
}

// TitleOrDefault returns the job title or a placeholder when unknown.
func (j *JobRecord) TitleOrDefault() string {
	if j.Title != nil && *j.Title != "" {
		return *j.Title
	}
	return "No title"
}

// CompanyOrDefault returns the company name or a placeholder when unknown.
func (j *JobRecord) CompanyOrDefault() string {
	if j.Company != nil && *j.Company != "" {
		return *j.Company
	}
	return "No company"
}
