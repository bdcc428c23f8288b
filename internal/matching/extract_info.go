package matching

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/schemas"
	"github.com/jonathan/jobscout/internal/types"
)

const keyInfoSystemPrompt = "You extract structured requirements from job descriptions " +
	"and respond with a single JSON object only."

const keyInfoPromptTemplate = `Extract the key information from this job description.

JOB DESCRIPTION:
%s

Respond with a JSON object with exactly these fields:
{
  "technical_skills": ["required technical skills"],
  "experience_years": "required years of experience, e.g. 3-5 years",
  "responsibilities": ["main responsibilities"],
  "preferred_qualifications": ["nice-to-have qualifications"],
  "industry": "industry or domain",
  "salary_range": "salary range if stated, otherwise empty string"
}

Return only the JSON object.`

// ExtractKeyInfo pulls the requirement summary out of one job description,
// independent of any resume.
func (m *Matcher) ExtractKeyInfo(ctx context.Context, job types.JobRecord) (*types.JobKeyInfo, error) {
	description := CleanText(job.Description)
	if description == "" {
		return nil, &ScoreError{JobID: job.JobID, Message: "job has no description"}
	}

	prompt := fmt.Sprintf(keyInfoPromptTemplate, description)
	raw, err := m.client.Generate(ctx, keyInfoSystemPrompt, prompt, llm.TierLite)
	if err != nil {
		return nil, &ScoreError{JobID: job.JobID, Message: "model request failed", Cause: err}
	}

	payload, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, &ScoreError{JobID: job.JobID, Message: "response contained no JSON object", Cause: err}
	}
	if err := schemas.ValidateKeyInfo(payload); err != nil {
		return nil, &ScoreError{JobID: job.JobID, Message: "response failed schema validation", Cause: err}
	}

	var info types.JobKeyInfo
	if err := json.Unmarshal([]byte(payload), &info); err != nil {
		return nil, &ScoreError{JobID: job.JobID, Message: "response JSON did not match key-info shape", Cause: err}
	}
	return &info, nil
}
