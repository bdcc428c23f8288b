package enrichment

import (
	"context"
	"fmt"
	"testing"

	"github.com/jonathan/jobscout/internal/fetchjd"
	"github.com/jonathan/jobscout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// fakeFetcher returns canned details per URL and records the URLs it saw.
type fakeFetcher struct {
	details map[string]*fetchjd.Details
	errs    map[string]error
	calls   []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*fetchjd.Details, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if d, ok := f.details[url]; ok {
		return d, nil
	}
	return &fetchjd.Details{}, nil
}

// fastOptions removes the politeness delay so tests run instantly.
func fastOptions() Options {
	return Options{CheckpointEvery: 5}
}

func jobIDs(jobs []types.JobRecord) []string {
	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.JobID
	}
	return ids
}

func TestEnrichAttachesDescriptions(t *testing.T) {
	jobs := []types.JobRecord{
		{JobID: "1", URL: "https://example.com/1"},
		{JobID: "2", URL: "https://example.com/2"},
	}
	fetcher := &fakeFetcher{details: map[string]*fetchjd.Details{
		"https://example.com/1": {Description: "desc one", Title: strPtr("Engineer")},
		"https://example.com/2": {Description: "desc two"},
	}}

	out, err := Enrich(context.Background(), jobs, fetcher, fastOptions(), nil, nil)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "desc one", out[0].Description)
	require.NotNil(t, out[0].Title)
	assert.Equal(t, "Engineer", *out[0].Title)
	assert.Equal(t, "desc two", out[1].Description)
}

func TestEnrichTotalityOnFailures(t *testing.T) {
	jobs := []types.JobRecord{
		{JobID: "1", URL: "https://example.com/1"},
		{JobID: "2", URL: "https://example.com/2"},
		{JobID: "3", URL: "https://example.com/3"},
	}
	fetcher := &fakeFetcher{
		details: map[string]*fetchjd.Details{
			"https://example.com/1": {Description: "ok"},
			"https://example.com/3": {Description: "also ok"},
		},
		errs: map[string]error{
			"https://example.com/2": fmt.Errorf("connection reset"),
		},
	}

	out, err := Enrich(context.Background(), jobs, fetcher, fastOptions(), nil, nil)
	require.NoError(t, err)

	// Failures keep, never drop, the record.
	assert.Equal(t, jobIDs(jobs), jobIDs(out))
	assert.Equal(t, "ok", out[0].Description)
	assert.Empty(t, out[1].Description)
	assert.Equal(t, "also ok", out[2].Description)
}

func TestEnrichMergeNeverClobbersDiscoveryInfo(t *testing.T) {
	jobs := []types.JobRecord{{
		JobID:   "1",
		URL:     "https://example.com/1",
		Title:   strPtr("Title from discovery"),
		Company: nil,
	}}
	fetcher := &fakeFetcher{details: map[string]*fetchjd.Details{
		"https://example.com/1": {
			Description: "desc",
			Title:       strPtr("Title from page"),
			Company:     strPtr("Acme"),
		},
	}}

	out, err := Enrich(context.Background(), jobs, fetcher, fastOptions(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Title from discovery", *out[0].Title)
	assert.Equal(t, "Acme", *out[0].Company)
}

func TestEnrichSkipsAlreadyEnriched(t *testing.T) {
	jobs := []types.JobRecord{
		{JobID: "1", URL: "https://example.com/1", Description: "already here"},
		{JobID: "2", URL: "https://example.com/2"},
	}
	fetcher := &fakeFetcher{details: map[string]*fetchjd.Details{
		"https://example.com/2": {Description: "fetched"},
	}}

	out, err := Enrich(context.Background(), jobs, fetcher, fastOptions(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/2"}, fetcher.calls)
	assert.Equal(t, "already here", out[0].Description)
}

func TestEnrichCheckpointCadence(t *testing.T) {
	jobs := make([]types.JobRecord, 12)
	for i := range jobs {
		jobs[i] = types.JobRecord{JobID: fmt.Sprint(i), URL: fmt.Sprintf("https://example.com/%d", i)}
	}
	fetcher := &fakeFetcher{}

	var checkpoints [][]string
	checkpoint := func(records []types.JobRecord) error {
		checkpoints = append(checkpoints, jobIDs(records))
		return nil
	}

	opts := fastOptions()
	opts.CheckpointEvery = 5
	_, err := Enrich(context.Background(), jobs, fetcher, opts, checkpoint, nil)
	require.NoError(t, err)

	// 12 items, every 5: checkpoints after item 5 and 10.
	require.Len(t, checkpoints, 2)
	// Every checkpoint is a full snapshot of the whole collection.
	assert.Len(t, checkpoints[0], 12)
	assert.Len(t, checkpoints[1], 12)
}

func TestEnrichCheckpointFailureAborts(t *testing.T) {
	jobs := make([]types.JobRecord, 6)
	for i := range jobs {
		jobs[i] = types.JobRecord{JobID: fmt.Sprint(i), URL: fmt.Sprintf("https://example.com/%d", i)}
	}

	checkpoint := func([]types.JobRecord) error { return fmt.Errorf("disk full") }

	_, err := Enrich(context.Background(), jobs, &fakeFetcher{}, fastOptions(), checkpoint, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checkpoint")
}

func TestEnrichCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []types.JobRecord{{JobID: "1", URL: "https://example.com/1"}}
	opts := Options{DelayMin: 1, DelayMax: 2, CheckpointEvery: 5}

	_, err := Enrich(ctx, jobs, &fakeFetcher{}, opts, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnrichEmptyInput(t *testing.T) {
	out, err := Enrich(context.Background(), nil, &fakeFetcher{}, fastOptions(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
