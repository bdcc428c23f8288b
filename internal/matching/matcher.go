package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/schemas"
	"github.com/jonathan/jobscout/internal/types"
)

const matchSystemPrompt = "You are a job match analyst. You compare a job description " +
	"against a candidate resume and respond with a single JSON object only."

const matchPromptTemplate = `Analyze how well this candidate matches the job below.

RESUME:
%s

JOB TITLE: %s
COMPANY: %s

JOB DESCRIPTION:
%s

Respond with a JSON object with exactly these fields:
{
  "overall_score": <0-100>,
  "technical_skills_score": <0-100>,
  "experience_score": <0-100>,
  "domain_score": <0-100>,
  "responsibilities_score": <0-100>,
  "strengths": ["candidate strengths for this role"],
  "gaps": ["gaps between the resume and the role"],
  "missing_keywords": ["important keywords absent from the resume"],
  "recommendations": ["concrete actions to improve the match"],
  "priority": "HIGH" | "MEDIUM" | "LOW"
}

Use HIGH for scores 80 and above, MEDIUM for 60-79, LOW below 60.
Return only the JSON object.`

// ScoreError represents a failed analysis of one job.
type ScoreError struct {
	JobID   string
	Message string
	Cause   error
}

func (e *ScoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to score job %s: %s: %v", e.JobID, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to score job %s: %s", e.JobID, e.Message)
}

func (e *ScoreError) Unwrap() error {
	return e.Cause
}

// Matcher scores jobs against a fixed resume using the model.
type Matcher struct {
	client llm.Client
	now    func() time.Time
}

// NewMatcher returns a Matcher backed by the given model client.
func NewMatcher(client llm.Client) *Matcher {
	return &Matcher{client: client, now: time.Now}
}

// ScoreJob runs one analysis. The returned record passed both schema and
// struct validation; callers that get an error should substitute Fallback.
func (m *Matcher) ScoreJob(ctx context.Context, job types.JobRecord, resumeText string) (*types.AnalysisRecord, error) {
	description := CleanText(job.Description)
	if description == "" {
		return nil, &ScoreError{JobID: job.JobID, Message: "job has no description"}
	}

	prompt := fmt.Sprintf(matchPromptTemplate,
		resumeText, job.TitleOrDefault(), job.CompanyOrDefault(), description)

	raw, err := m.client.Generate(ctx, matchSystemPrompt, prompt, llm.TierStandard)
	if err != nil {
		return nil, &ScoreError{JobID: job.JobID, Message: "model request failed", Cause: err}
	}

	payload, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, &ScoreError{JobID: job.JobID, Message: "response contained no JSON object", Cause: err}
	}

	if err := schemas.ValidateAnalysis(payload); err != nil {
		return nil, &ScoreError{JobID: job.JobID, Message: "response failed schema validation", Cause: err}
	}

	var record types.AnalysisRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, &ScoreError{JobID: job.JobID, Message: "response JSON did not match record shape", Cause: err}
	}

	// Error marks fallback records only; drop anything the model put there.
	record.Error = ""

	record.JobID = job.JobID
	record.JobURL = job.URL
	record.JobTitle = job.TitleOrDefault()
	record.Company = job.CompanyOrDefault()
	record.Priority = types.NormalizePriority(record.Priority)
	record.AnalysisTimestamp = m.now().Format(time.RFC3339)
	fillDefaults(&record)

	if err := record.Validate(); err != nil {
		return nil, &ScoreError{JobID: job.JobID, Message: "record failed validation", Cause: err}
	}
	return &record, nil
}

// Fallback builds the schema-complete record substituted when an analysis
// fails. All scores are zero, the priority is UNKNOWN, and Error is set.
func (m *Matcher) Fallback(job types.JobRecord, cause error) types.AnalysisRecord {
	reason := "analysis failed"
	if cause != nil {
		reason = cause.Error()
	}
	return types.AnalysisRecord{
		JobID:             job.JobID,
		JobURL:            job.URL,
		JobTitle:          job.TitleOrDefault(),
		Company:           job.CompanyOrDefault(),
		Strengths:         []string{"Analysis failed - manual review needed"},
		Gaps:              []string{"Could not analyze - check API connection"},
		MissingKeywords:   []string{},
		Recommendations:   []string{"Retry analysis or review manually"},
		Priority:          types.PriorityUnknown,
		AnalysisTimestamp: m.now().Format(time.RFC3339),
		Error:             reason,
	}
}

// AnalyzeAll scores every job that has a usable description and returns the
// records sorted by overall score, highest first. Jobs whose descriptions
// clean down to nothing are skipped entirely; any other failure yields a
// fallback record so one bad response never aborts the run.
func (m *Matcher) AnalyzeAll(ctx context.Context, jobs []types.JobRecord, resumeText string, onProgress func(done, total int)) ([]types.AnalysisRecord, error) {
	results := make([]types.AnalysisRecord, 0, len(jobs))
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if CleanText(job.Description) == "" {
			log.Printf("Skipping job %s: no description to analyze", job.JobID)
			continue
		}

		record, err := m.ScoreJob(ctx, job, resumeText)
		if err != nil {
			log.Printf("Analysis failed for job %s: %v", job.JobID, err)
			fb := m.Fallback(job, err)
			results = append(results, fb)
		} else {
			results = append(results, *record)
		}

		if onProgress != nil {
			onProgress(i+1, len(jobs))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
	return results, nil
}

// fillDefaults replaces nil list fields with empty slices so downstream JSON
// always carries arrays.
func fillDefaults(r *types.AnalysisRecord) {
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Gaps == nil {
		r.Gaps = []string{}
	}
	if r.MissingKeywords == nil {
		r.MissingKeywords = []string{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
}
