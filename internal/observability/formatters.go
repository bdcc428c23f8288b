// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobscout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCollectedJobs outputs a summary of the jobs a collection run gathered.
func (p *Printer) PrintCollectedJobs(jobs []types.JobRecord) {
	if len(jobs) == 0 {
		return
	}

	var sb strings.Builder
	withDescriptions := 0
	for _, job := range jobs {
		if job.HasDescription() {
			withDescriptions++
		}
	}
	sb.WriteString(fmt.Sprintf("Total jobs collected: %d\n", len(jobs)))
	sb.WriteString(fmt.Sprintf("With full descriptions: %d\n\n", withDescriptions))

	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i]
		sb.WriteString(fmt.Sprintf("  • %s\n", job.TitleOrDefault()))
		sb.WriteString(fmt.Sprintf("    %s | ID %s\n", job.CompanyOrDefault(), job.JobID))
	}
	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jobs)-maxItemsToShow))
	}

	p.printBox("COLLECTED JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedMatches outputs the top N analysis results with scores and
// leading strengths.
func (p *Printer) PrintRankedMatches(results []types.AnalysisRecord) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total jobs analyzed: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.JobTitle))
		sb.WriteString(fmt.Sprintf("    Score: %d/100 (%s)\n", r.OverallScore, r.Priority))
		if len(r.Strengths) > 0 {
			strengths := strings.Join(r.Strengths, ", ")
			if len(strengths) > 40 {
				strengths = strengths[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Strengths: %s\n", strengths))
		}
		if r.IsFallback() {
			sb.WriteString("    (fallback record)\n")
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(results)-maxItemsToShow))
	}

	p.printBox("TOP MATCHES", sb.String())
}

// PrintResumeProfile outputs a short summary of the structured resume.
func (p *Printer) PrintResumeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.PersonalInfo.Name != "" {
		sb.WriteString(fmt.Sprintf("Candidate: %s\n", profile.PersonalInfo.Name))
	}
	sb.WriteString(fmt.Sprintf("Experience entries: %d\n", len(profile.Experience)))
	sb.WriteString(fmt.Sprintf("Education entries: %d\n", len(profile.Education)))

	if langs := profile.Skills.ProgrammingLanguages; len(langs) > 0 {
		line := strings.Join(langs, ", ")
		if len(line) > 40 {
			line = line[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Languages: %s\n", line))
	}

	p.printBox("RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}
