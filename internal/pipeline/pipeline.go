// Package pipeline sequences the job-search stages over the shared file
// store: collect, enrich, analyze, report. Each stage reads its predecessor's
// output file and writes its own, so stages can be rerun independently.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/jobscout/internal/discovery"
	"github.com/jonathan/jobscout/internal/enrichment"
	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/matching"
	"github.com/jonathan/jobscout/internal/report"
	"github.com/jonathan/jobscout/internal/resume"
	"github.com/jonathan/jobscout/internal/store"
	"github.com/jonathan/jobscout/internal/types"
)

// Pipeline owns the file store and status tracker shared by all stages.
type Pipeline struct {
	store  *store.Store
	status *Status
}

// New returns a Pipeline over the given store.
func New(st *store.Store) *Pipeline {
	return &Pipeline{store: st, status: NewStatus()}
}

// Store exposes the underlying stage store.
func (p *Pipeline) Store() *store.Store {
	return p.store
}

// Status exposes the run status tracker.
func (p *Pipeline) Status() *Status {
	return p.status
}

// CollectJobs runs discovery then enrichment and persists both stage outputs.
// It returns the enriched records. Enrichment checkpoints are written to the
// enriched-jobs file as it goes, so an interrupted run keeps partial work.
func (p *Pipeline) CollectJobs(ctx context.Context, sess discovery.Session, searchURL string, dopts discovery.Options, fetcher enrichment.Fetcher, eopts enrichment.Options) ([]types.JobRecord, error) {
	p.status.Update("collecting", "authenticating session", 0, dopts.MaxJobs)

	jobs, err := discovery.Collect(ctx, sess, searchURL, dopts, func(collected, target int, message string) {
		p.status.Update("collecting", message, collected, target)
	})
	if err != nil {
		return nil, fmt.Errorf("job collection failed: %w", err)
	}

	if err := store.Save(p.store, store.FileJobs, jobs); err != nil {
		return nil, fmt.Errorf("failed to save collected jobs: %w", err)
	}
	fmt.Printf("Collected %d jobs\n", len(jobs))

	p.status.Update("enriching", "fetching job descriptions", 0, len(jobs))
	enriched, err := enrichment.Enrich(ctx, jobs, fetcher, eopts,
		func(records []types.JobRecord) error {
			return store.Save(p.store, store.FileEnriched, records)
		},
		func(done, total int, message string) {
			p.status.Update("enriching", message, done, total)
		})
	if err != nil {
		return nil, fmt.Errorf("enrichment failed: %w", err)
	}

	if err := store.Save(p.store, store.FileEnriched, enriched); err != nil {
		return nil, fmt.Errorf("failed to save enriched jobs: %w", err)
	}
	return enriched, nil
}

// ProcessResume extracts text from a resume PDF, structures it through the
// model and persists the combined artifact.
func (p *Pipeline) ProcessResume(ctx context.Context, client llm.Client, pdfPath string) (*types.ResumeData, error) {
	p.status.Update("resume", "extracting PDF text", 0, 0)

	text, err := resume.ExtractText(pdfPath)
	if err != nil {
		return nil, err
	}

	p.status.Update("resume", "structuring resume", 0, 0)
	profile, err := resume.Structure(ctx, client, text)
	if err != nil {
		return nil, err
	}

	data := &types.ResumeData{
		Text:       text,
		Structured: profile,
		UploadedAt: time.Now().Format(time.RFC3339),
	}
	if err := store.SaveObject(p.store, store.FileResume, data); err != nil {
		return nil, fmt.Errorf("failed to save resume data: %w", err)
	}
	return data, nil
}

// AnalyzeMatches scores every enriched job against the stored resume, saves
// the ranked results and writes the text report. Both the resume and the
// enriched jobs must exist; a missing prerequisite surfaces as
// store.ErrStageNotRun.
func (p *Pipeline) AnalyzeMatches(ctx context.Context, client llm.Client) ([]types.AnalysisRecord, error) {
	resumeData, err := store.LoadObject[types.ResumeData](p.store, store.FileResume)
	if err != nil {
		return nil, fmt.Errorf("resume not available: %w", err)
	}

	jobs, err := store.Load[types.JobRecord](p.store, store.FileEnriched)
	if err != nil {
		return nil, fmt.Errorf("enriched jobs not available: %w", err)
	}

	resumeText := resumeData.Text
	if resumeData.Structured != nil {
		resumeText = resume.ProfileText(resumeData.Structured)
	}

	p.status.Update("analyzing", "scoring jobs", 0, len(jobs))
	matcher := matching.NewMatcher(client)
	results, err := matcher.AnalyzeAll(ctx, jobs, resumeText, func(done, total int) {
		p.status.Update("analyzing", fmt.Sprintf("analyzed %d of %d jobs", done, total), done, total)
	})
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	if err := store.Save(p.store, store.FileAnalysis, results); err != nil {
		return nil, fmt.Errorf("failed to save analysis results: %w", err)
	}

	p.status.Update("reporting", "writing report", len(jobs), len(jobs))
	text := report.Render(results, time.Now())
	if err := p.store.SaveText(store.FileReport, text); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	fmt.Printf("Analyzed %d jobs\n", len(results))
	return results, nil
}

// Results bundles everything the results surface returns.
type Results struct {
	Records []types.AnalysisRecord `json:"results"`
	Stats   report.Stats           `json:"stats"`
	Report  string                 `json:"report,omitempty"`
}

// Results loads the persisted analysis output. The report text is optional;
// the records are not.
func (p *Pipeline) Results() (*Results, error) {
	records, err := store.Load[types.AnalysisRecord](p.store, store.FileAnalysis)
	if err != nil {
		return nil, fmt.Errorf("analysis results not available: %w", err)
	}

	res := &Results{
		Records: records,
		Stats:   report.Summarize(records),
	}
	if text, err := p.store.LoadText(store.FileReport); err == nil {
		res.Report = text
	}
	return res, nil
}

// Reset clears every stage file and returns the status to idle.
func (p *Pipeline) Reset() error {
	if err := p.store.Reset(); err != nil {
		return fmt.Errorf("failed to reset stage files: %w", err)
	}
	p.status.Reset()
	return nil
}
