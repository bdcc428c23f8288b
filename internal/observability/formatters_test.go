package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobscout/internal/types"
)

func strPtr(s string) *string { return &s }

func TestPrintCollectedJobs(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jobs := []types.JobRecord{
		{JobID: "1", Title: strPtr("Backend Engineer"), Company: strPtr("Acme"), Description: "desc"},
		{JobID: "2"},
	}
	p.PrintCollectedJobs(jobs)

	out := buf.String()
	assert.Contains(t, out, "COLLECTED JOBS")
	assert.Contains(t, out, "Total jobs collected: 2")
	assert.Contains(t, out, "With full descriptions: 1")
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "No title")
}

func TestPrintCollectedJobsTruncatesList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jobs := make([]types.JobRecord, 8)
	for i := range jobs {
		jobs[i] = types.JobRecord{JobID: string(rune('a' + i))}
	}
	p.PrintCollectedJobs(jobs)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintCollectedJobsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCollectedJobs(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRankedMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := []types.AnalysisRecord{
		{JobTitle: "Platform Engineer", OverallScore: 88, Priority: types.PriorityHigh, Strengths: []string{"Go", "Kubernetes"}},
		{JobTitle: "Data Engineer", OverallScore: 0, Priority: types.PriorityUnknown, Error: "model unavailable"},
	}
	p.PrintRankedMatches(results)

	out := buf.String()
	assert.Contains(t, out, "TOP MATCHES")
	assert.Contains(t, out, "#1  Platform Engineer")
	assert.Contains(t, out, "Score: 88/100 (HIGH)")
	assert.Contains(t, out, "Strengths: Go, Kubernetes")
	assert.Contains(t, out, "(fallback record)")
}

func TestPrintResumeProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeProfile(&types.ResumeProfile{
		PersonalInfo: types.PersonalInfo{Name: "Jane Doe"},
		Experience:   []types.ExperienceEntry{{Company: "Acme"}},
		Skills:       types.SkillSet{ProgrammingLanguages: []string{"Go", "Python"}},
	})

	out := buf.String()
	assert.Contains(t, out, "RESUME PROFILE")
	assert.Contains(t, out, "Candidate: Jane Doe")
	assert.Contains(t, out, "Experience entries: 1")
	assert.Contains(t, out, "Languages: Go, Python")
}

func TestPrintResumeProfileNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumeProfile(nil)
	assert.Empty(t, buf.String())
}

func TestLongLinesTruncatedInBox(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	long := strings.Repeat("x", 100)
	p.PrintRankedMatches([]types.AnalysisRecord{{JobTitle: long, OverallScore: 50, Priority: types.PriorityLow}})

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth+2)
	}
}
