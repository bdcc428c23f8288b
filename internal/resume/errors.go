// Package resume turns a candidate's PDF resume into the normalized
// ResumeProfile the matching stage consumes.
package resume

import "fmt"

// ExtractError represents a failure reading text out of the PDF.
type ExtractError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract %s: %s", e.Path, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// StructureError represents a failure deriving the structured profile from
// resume text.
type StructureError struct {
	Message string
	Cause   error
}

func (e *StructureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to structure resume: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to structure resume: %s", e.Message)
}

func (e *StructureError) Unwrap() error {
	return e.Cause
}
