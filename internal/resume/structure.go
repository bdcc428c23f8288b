package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/types"
)

const structureSystemPrompt = "You are a resume parsing assistant. " +
	"You convert raw resume text into structured JSON and respond with JSON only."

const structurePromptTemplate = `Convert the following resume text into a JSON object with this exact structure:

{
  "personal_info": {
    "name": "...",
    "email": "...",
    "phone": "...",
    "location": {"city": "...", "state": "...", "country": "..."},
    "linkedin": "...",
    "github": "...",
    "portfolio": "..."
  },
  "summary": "...",
  "experience": [
    {
      "company": "...",
      "position": "...",
      "location": "...",
      "start_date": "YYYY-MM",
      "end_date": "YYYY-MM or Present",
      "responsibilities": ["..."],
      "technologies": ["..."]
    }
  ],
  "education": [
    {
      "institution": "...",
      "degree": "...",
      "location": "...",
      "start_date": "...",
      "end_date": "...",
      "gpa": "..."
    }
  ],
  "skills": {
    "technical": ["..."],
    "programming_languages": ["..."],
    "frameworks": ["..."],
    "tools": ["..."],
    "soft_skills": ["..."]
  },
  "projects": [
    {"name": "...", "description": "...", "technologies": ["..."], "url": "..."}
  ],
  "certifications": [
    {"name": "...", "issuer": "...", "date": "..."}
  ]
}

Omit fields that are not present in the resume. Return only the JSON object.

Resume text:
%s`

// Structure asks the model to convert raw resume text into a ResumeProfile.
func Structure(ctx context.Context, client llm.Client, text string) (*types.ResumeProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &StructureError{Message: "resume text is empty"}
	}

	prompt := fmt.Sprintf(structurePromptTemplate, text)
	raw, err := client.Generate(ctx, structureSystemPrompt, prompt, llm.TierLite)
	if err != nil {
		return nil, &StructureError{Message: "model request failed", Cause: err}
	}

	payload, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, &StructureError{Message: "response contained no JSON object", Cause: err}
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, &StructureError{Message: "response JSON did not match profile shape", Cause: err}
	}
	return &profile, nil
}
