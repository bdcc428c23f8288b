// Package llm - json.go provides lenient extraction of a JSON object from
// free-text model responses.
package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from model responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line, if any.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// ExtractJSONObject locates the JSON object embedded in a free-text response
// and returns exactly that span. It first tries the greedy span from the
// first '{' to the last '}'; if that is not valid JSON it falls back to the
// first balanced-brace span. Surrounding prose is ignored either way.
func ExtractJSONObject(text string) (string, error) {
	text = CleanJSONBlock(text)

	start := strings.Index(text, "{")
	if start < 0 {
		return "", fmt.Errorf("no JSON object found in response")
	}

	if end := strings.LastIndex(text, "}"); end > start {
		span := text[start : end+1]
		if json.Valid([]byte(span)) {
			return span, nil
		}
	}

	if span, ok := balancedSpan(text[start:]); ok && json.Valid([]byte(span)) {
		return span, nil
	}

	return "", fmt.Errorf("no parseable JSON object found in response")
}

// balancedSpan scans from the leading '{' of s to its matching close brace,
// ignoring braces inside JSON strings.
func balancedSpan(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[:i+1], true
				}
			}
		}
	}

	return "", false
}
