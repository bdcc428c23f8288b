// Package report renders the ranked analysis results into the plain-text
// match report and its summary statistics.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/jobscout/internal/types"
)

const topMatches = 5

// Stats are the aggregate numbers shown in the report header and returned by
// the results API.
type Stats struct {
	Total         int     `json:"total_jobs"`
	AverageScore  float64 `json:"average_score"`
	HighMatches   int     `json:"high_matches"`   // score >= 80
	MediumMatches int     `json:"medium_matches"` // 60 <= score < 80
}

// Summarize computes the aggregate stats over a result set.
func Summarize(results []types.AnalysisRecord) Stats {
	stats := Stats{Total: len(results)}
	if len(results) == 0 {
		return stats
	}

	sum := 0
	for _, r := range results {
		sum += r.OverallScore
		switch {
		case r.OverallScore >= 80:
			stats.HighMatches++
		case r.OverallScore >= 60:
			stats.MediumMatches++
		}
	}
	stats.AverageScore = float64(sum) / float64(len(results))
	return stats
}

// Render builds the full text report. Results are expected to already be
// sorted by overall score, highest first.
func Render(results []types.AnalysisRecord, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("JOB MATCH ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.Format("2006-01-02 15:04:05"))

	if len(results) == 0 {
		b.WriteString("No jobs analyzed.\n")
		return b.String()
	}

	stats := Summarize(results)
	b.WriteString("SUMMARY:\n")
	fmt.Fprintf(&b, "Total jobs analyzed: %d\n", stats.Total)
	fmt.Fprintf(&b, "Average match score: %.1f\n", stats.AverageScore)
	fmt.Fprintf(&b, "High matches (80+): %d\n", stats.HighMatches)
	fmt.Fprintf(&b, "Medium matches (60-79): %d\n\n", stats.MediumMatches)

	b.WriteString("TOP MATCHES:\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for i, r := range results {
		if i >= topMatches {
			break
		}
		fmt.Fprintf(&b, "%d. %s at %s\n", i+1, r.JobTitle, r.Company)
		fmt.Fprintf(&b, "   Score: %d/100 | Priority: %s | Job ID: %s\n", r.OverallScore, r.Priority, r.JobID)
		for j, s := range r.Strengths {
			if j >= 2 {
				break
			}
			fmt.Fprintf(&b, "   + %s\n", s)
		}
		if r.IsFallback() {
			fmt.Fprintf(&b, "   ! %s\n", r.Error)
		}
		b.WriteString("\n")
	}

	high := countPriority(results, types.PriorityHigh)
	medium := countPriority(results, types.PriorityMedium)
	b.WriteString("ACTION PLAN:\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	fmt.Fprintf(&b, "Apply immediately: %d HIGH priority matches\n", high)
	fmt.Fprintf(&b, "Apply this week: %d MEDIUM priority matches\n", medium)

	return b.String()
}

func countPriority(results []types.AnalysisRecord, priority string) int {
	n := 0
	for _, r := range results {
		if r.Priority == priority {
			n++
		}
	}
	return n
}
