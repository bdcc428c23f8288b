package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Priority buckets for an analyzed job. UNKNOWN is reserved for fallback
// records where the analysis could not be completed.
const (
	PriorityHigh    = "HIGH"
	PriorityMedium  = "MEDIUM"
	PriorityLow     = "LOW"
	PriorityUnknown = "UNKNOWN"
)

// NormalizePriority maps free-form model output onto the fixed priority set.
// Anything unrecognized becomes UNKNOWN rather than leaking through.
func NormalizePriority(p string) string {
	switch strings.ToUpper(strings.TrimSpace(p)) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityMedium:
		return PriorityMedium
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityUnknown
	}
}

// AnalysisRecord is the structured result of scoring one job against a resume.
// Every enriched job with a non-empty description yields exactly one record,
// either a genuine analysis or a schema-complete fallback.
type AnalysisRecord struct {
	JobID    string `json:"job_id"`
	JobURL   string `json:"job_url"`
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`

	OverallScore          int `json:"overall_score" validate:"min=0,max=100"`
	TechnicalSkillsScore  int `json:"technical_skills_score" validate:"min=0,max=100"`
	ExperienceScore       int `json:"experience_score" validate:"min=0,max=100"`
	DomainScore           int `json:"domain_score" validate:"min=0,max=100"`
	ResponsibilitiesScore int `json:"responsibilities_score" validate:"min=0,max=100"`

	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	MissingKeywords []string `json:"missing_keywords"`
	Recommendations []string `json:"recommendations"`

	Priority          string `json:"priority" validate:"required,oneof=HIGH MEDIUM LOW UNKNOWN"`
	AnalysisTimestamp string `json:"analysis_timestamp"`

	// Error is set only on fallback records and explains why the genuine
	// analysis was not produced.
	Error string `json:"error,omitempty"`
}

// Validate checks score ranges and the priority enum using the validator.
func (a *AnalysisRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// IsFallback reports whether this record was substituted for a failed analysis.
func (a *AnalysisRecord) IsFallback() bool {
	return a.Error != ""
}

// JobKeyInfo holds the key requirements extracted from a single job
// description, independent of any resume.
type JobKeyInfo struct {
	TechnicalSkills         []string `json:"technical_skills"`
	ExperienceYears         string   `json:"experience_years"`
	Responsibilities        []string `json:"responsibilities"`
	PreferredQualifications []string `json:"preferred_qualifications"`
	Industry                string   `json:"industry"`
	SalaryRange             string   `json:"salary_range"`
}
