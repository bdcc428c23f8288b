package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobscout/internal/types"
)

func record(id string, score int, priority string) types.AnalysisRecord {
	return types.AnalysisRecord{
		JobID:        id,
		JobTitle:     "Job " + id,
		Company:      "Company " + id,
		OverallScore: score,
		Priority:     priority,
		Strengths:    []string{"strength one", "strength two", "strength three"},
	}
}

func TestSummarize(t *testing.T) {
	results := []types.AnalysisRecord{
		record("a", 100, types.PriorityHigh),
		record("b", 90, types.PriorityHigh),
		record("c", 70, types.PriorityMedium),
		record("d", 50, types.PriorityLow),
	}

	stats := Summarize(results)
	assert.Equal(t, 4, stats.Total)
	assert.InDelta(t, 77.5, stats.AverageScore, 0.001)
	assert.Equal(t, 2, stats.HighMatches)
	assert.Equal(t, 1, stats.MediumMatches)
}

func TestSummarizeBoundaries(t *testing.T) {
	results := []types.AnalysisRecord{
		record("a", 80, types.PriorityHigh),
		record("b", 79, types.PriorityMedium),
		record("c", 60, types.PriorityMedium),
		record("d", 59, types.PriorityLow),
	}

	stats := Summarize(results)
	assert.Equal(t, 1, stats.HighMatches)
	assert.Equal(t, 2, stats.MediumMatches)
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	assert.Equal(t, 0, stats.Total)
	assert.Zero(t, stats.AverageScore)
}

func TestRender(t *testing.T) {
	results := []types.AnalysisRecord{
		record("a", 100, types.PriorityHigh),
		record("b", 90, types.PriorityHigh),
		record("c", 70, types.PriorityMedium),
		record("d", 50, types.PriorityLow),
	}
	generated := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	text := Render(results, generated)

	assert.Contains(t, text, "JOB MATCH ANALYSIS REPORT")
	assert.Contains(t, text, "Generated: 2025-06-01 09:30:00")
	assert.Contains(t, text, "Total jobs analyzed: 4")
	assert.Contains(t, text, "Average match score: 77.5")
	assert.Contains(t, text, "High matches (80+): 2")
	assert.Contains(t, text, "Medium matches (60-79): 1")
	assert.Contains(t, text, "1. Job a at Company a")
	assert.Contains(t, text, "Score: 100/100 | Priority: HIGH | Job ID: a")
	assert.Contains(t, text, "+ strength one")
	assert.Contains(t, text, "+ strength two")
	assert.NotContains(t, text, "strength three")
	assert.Contains(t, text, "Apply immediately: 2 HIGH priority matches")
	assert.Contains(t, text, "Apply this week: 1 MEDIUM priority matches")
}

func TestRenderTopMatchesCap(t *testing.T) {
	results := make([]types.AnalysisRecord, 0, 7)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		results = append(results, record(id, 90, types.PriorityHigh))
	}

	text := Render(results, time.Now())
	assert.Contains(t, text, "5. Job e")
	assert.NotContains(t, text, "6. Job f")
	assert.Equal(t, 5, strings.Count(text, "Score:"))
}

func TestRenderFallbackNote(t *testing.T) {
	rec := record("x", 0, types.PriorityUnknown)
	rec.Error = "model unavailable"

	text := Render([]types.AnalysisRecord{rec}, time.Now())
	assert.Contains(t, text, "! model unavailable")
	assert.Contains(t, text, "Priority: UNKNOWN")
}

func TestRenderEmpty(t *testing.T) {
	text := Render(nil, time.Now())
	assert.Contains(t, text, "No jobs analyzed.")
	assert.NotContains(t, text, "TOP MATCHES")
}
