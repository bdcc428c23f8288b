package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscout/internal/discovery"
	"github.com/jonathan/jobscout/internal/enrichment"
	"github.com/jonathan/jobscout/internal/fetchjd"
	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/store"
	"github.com/jonathan/jobscout/internal/types"
)

type fakeSession struct {
	ids      []string
	authErr  error
	revealed bool
}

func (f *fakeSession) Authenticate(ctx context.Context) error { return f.authErr }

func (f *fakeSession) Open(ctx context.Context, searchURL string) error { return nil }

func (f *fakeSession) ListVisibleIDs(ctx context.Context) ([]string, error) { return f.ids, nil }

func (f *fakeSession) RevealMore(ctx context.Context) (bool, error) {
	if f.revealed {
		return false, nil
	}
	f.revealed = true
	return true, nil
}

func (f *fakeSession) AdvanceItem(ctx context.Context) (bool, error) { return false, nil }

func (f *fakeSession) BasicInfo(ctx context.Context, jobID string) (discovery.BasicInfo, error) {
	title := "Job " + jobID
	company := "Acme"
	return discovery.BasicInfo{Title: &title, Company: &company}, nil
}

type fakeFetcher struct{}

func (fakeFetcher) Fetch(ctx context.Context, url string) (*fetchjd.Details, error) {
	return &fetchjd.Details{Description: "description from " + url}, nil
}

type fakeLLM struct {
	respond func(prompt string) (string, error)
}

func (f *fakeLLM) Generate(ctx context.Context, system, prompt string, tier llm.ModelTier) (string, error) {
	return f.respond(prompt)
}

func (f *fakeLLM) Close() error { return nil }

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	return New(st)
}

func fastEnrichOpts() enrichment.Options {
	return enrichment.Options{DelayMin: 0, DelayMax: 0, CheckpointEvery: 2}
}

func TestCollectJobs(t *testing.T) {
	p := newTestPipeline(t)
	sess := &fakeSession{ids: []string{"101", "102", "103"}}

	enriched, err := p.CollectJobs(context.Background(), sess, "https://example.com/search",
		discovery.Options{MaxJobs: 3, MaxStale: 1}, fakeFetcher{}, fastEnrichOpts())
	require.NoError(t, err)
	require.Len(t, enriched, 3)

	for _, job := range enriched {
		assert.True(t, job.HasDescription(), "job %s should be enriched", job.JobID)
	}

	saved, err := store.Load[types.JobRecord](p.Store(), store.FileJobs)
	require.NoError(t, err)
	assert.Len(t, saved, 3)
	assert.Empty(t, saved[0].Description, "discovery output is saved before enrichment")

	savedEnriched, err := store.Load[types.JobRecord](p.Store(), store.FileEnriched)
	require.NoError(t, err)
	assert.Len(t, savedEnriched, 3)
}

func TestCollectJobsAuthFailure(t *testing.T) {
	p := newTestPipeline(t)
	sess := &fakeSession{authErr: fmt.Errorf("cookies rejected")}

	_, err := p.CollectJobs(context.Background(), sess, "https://example.com/search",
		discovery.Options{MaxJobs: 3}, fakeFetcher{}, fastEnrichOpts())
	require.Error(t, err)

	var authErr *discovery.AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.False(t, p.Store().Exists(store.FileJobs), "no stage file written on auth failure")
}

func TestAnalyzeMatchesMissingPrerequisites(t *testing.T) {
	p := newTestPipeline(t)
	client := &fakeLLM{respond: func(string) (string, error) { return "{}", nil }}

	// Neither resume nor enriched jobs exist.
	_, err := p.AnalyzeMatches(context.Background(), client)
	require.ErrorIs(t, err, store.ErrStageNotRun)

	// Resume alone is not enough.
	require.NoError(t, store.SaveObject(p.Store(), store.FileResume, &types.ResumeData{Text: "resume"}))
	_, err = p.AnalyzeMatches(context.Background(), client)
	require.ErrorIs(t, err, store.ErrStageNotRun)
}

func TestAnalyzeMatchesEndToEnd(t *testing.T) {
	p := newTestPipeline(t)

	require.NoError(t, store.SaveObject(p.Store(), store.FileResume, &types.ResumeData{Text: "ten years of Go"}))

	title := "Backend Engineer"
	company := "Acme"
	jobs := []types.JobRecord{
		{JobID: "1", URL: "https://x/1", Title: &title, Company: &company, Description: "Go services"},
		{JobID: "2", URL: "https://x/2", Title: &title, Company: &company, Description: "Java services"},
	}
	require.NoError(t, store.Save(p.Store(), store.FileEnriched, jobs))

	client := &fakeLLM{respond: func(prompt string) (string, error) {
		score := 40
		if strings.Contains(prompt, "Go services") {
			score = 85
		}
		return fmt.Sprintf(`{"overall_score": %d, "priority": "MEDIUM"}`, score), nil
	}}

	results, err := p.AnalyzeMatches(context.Background(), client)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].JobID, "highest score first")
	assert.Equal(t, 85, results[0].OverallScore)

	assert.True(t, p.Store().Exists(store.FileAnalysis))
	assert.True(t, p.Store().Exists(store.FileReport))

	res, err := p.Results()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.Total)
	assert.InDelta(t, 62.5, res.Stats.AverageScore, 0.001)
	assert.Equal(t, 1, res.Stats.HighMatches)
	assert.Contains(t, res.Report, "JOB MATCH ANALYSIS REPORT")
}

func TestResultsMissing(t *testing.T) {
	p := newTestPipeline(t)
	_, err := p.Results()
	require.ErrorIs(t, err, store.ErrStageNotRun)
}

func TestReset(t *testing.T) {
	p := newTestPipeline(t)
	require.NoError(t, store.Save(p.Store(), store.FileJobs, []types.JobRecord{{JobID: "1"}}))
	p.Status().Start("collecting")

	require.NoError(t, p.Reset())
	assert.False(t, p.Store().Exists(store.FileJobs))
	assert.Equal(t, StateIdle, p.Status().Current().State)
}

func TestStatusLifecycle(t *testing.T) {
	s := NewStatus()
	assert.Equal(t, StateIdle, s.Current().State)

	runID := s.Start("collecting")
	assert.NotEmpty(t, runID)
	assert.Equal(t, StateProcessing, s.Current().State)
	assert.Equal(t, "collecting", s.Current().Stage)

	s.Update("enriching", "fetching", 3, 10)
	snap := s.Current()
	assert.Equal(t, "enriching", snap.Stage)
	assert.Equal(t, 3, snap.Progress)
	assert.Equal(t, 10, snap.Total)

	s.Fail(fmt.Errorf("boom"))
	assert.Equal(t, StateError, s.Current().State)
	assert.Equal(t, "boom", s.Current().Error)

	second := s.Start("analyzing")
	assert.NotEqual(t, runID, second, "each run gets a fresh ID")
	assert.Empty(t, s.Current().Error)

	s.Complete("done")
	assert.Equal(t, StateCompleted, s.Current().State)
}
