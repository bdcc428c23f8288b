package resume

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls the plain text out of a PDF resume. Page text is
// concatenated in order with whitespace normalized so downstream prompts see a
// single clean block.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractError{Path: path, Message: "could not open PDF", Cause: err}
	}
	defer f.Close()

	var buf bytes.Buffer
	reader, err := r.GetPlainText()
	if err != nil {
		return "", &ExtractError{Path: path, Message: "could not read PDF text", Cause: err}
	}
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", &ExtractError{Path: path, Message: "could not read PDF text", Cause: err}
	}

	text := normalizeText(buf.String())
	if text == "" {
		return "", &ExtractError{Path: path, Message: "PDF contained no extractable text"}
	}
	return text, nil
}

func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	return strings.Join(out, "\n")
}
