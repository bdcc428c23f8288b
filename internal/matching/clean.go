// Package matching scores enriched jobs against a candidate resume using the
// model and produces the ranked analysis records the report consumes.
package matching

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	showMoreLessRe = regexp.MustCompile(`(?is)show more.*?show less`)
)

// CleanText normalizes a scraped job description for prompting: the
// "Show more ... Show less" widget text is stripped and all runs of
// whitespace collapse to single spaces.
func CleanText(s string) string {
	s = showMoreLessRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
