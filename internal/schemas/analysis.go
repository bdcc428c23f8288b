// Package schemas validates the JSON objects extracted from model responses
// before any field is trusted by the pipeline.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// analysisSchema constrains the match-analysis object the model returns.
// Scores must be integers in [0,100]; list fields must be string arrays.
// Only overall_score and priority are required - the matching stage fills
// conservative defaults for anything else the model omits.
const analysisSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["overall_score", "priority"],
  "properties": {
    "overall_score": {"type": "integer", "minimum": 0, "maximum": 100},
    "technical_skills_score": {"type": "integer", "minimum": 0, "maximum": 100},
    "experience_score": {"type": "integer", "minimum": 0, "maximum": 100},
    "domain_score": {"type": "integer", "minimum": 0, "maximum": 100},
    "responsibilities_score": {"type": "integer", "minimum": 0, "maximum": 100},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "gaps": {"type": "array", "items": {"type": "string"}},
    "missing_keywords": {"type": "array", "items": {"type": "string"}},
    "recommendations": {"type": "array", "items": {"type": "string"}},
    "priority": {"type": "string"}
  }
}`

// keyInfoSchema constrains the job key-info extraction object.
const keyInfoSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "technical_skills": {"type": "array", "items": {"type": "string"}},
    "experience_years": {"type": "string"},
    "responsibilities": {"type": "array", "items": {"type": "string"}},
    "preferred_qualifications": {"type": "array", "items": {"type": "string"}},
    "industry": {"type": "string"},
    "salary_range": {"type": "string"}
  }
}`

// FieldError is a single validation failure at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates all schema violations found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:")
	for _, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ValidateAnalysis checks a raw analysis JSON object against the schema.
func ValidateAnalysis(jsonText string) error {
	return validate(analysisSchema, jsonText)
}

// ValidateKeyInfo checks a raw key-info JSON object against the schema.
func ValidateKeyInfo(jsonText string) error {
	return validate(keyInfoSchema, jsonText)
}

func validate(schema, jsonText string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(jsonText),
	)
	if err != nil {
		return fmt.Errorf("schema validation could not run: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
