// Package enrichment attaches full descriptions to discovered jobs. It is a
// partial-failure-tolerant map: a fetch that fails leaves the original record
// untouched and the run moves on, so the output always carries the exact same
// set of job IDs as the input.
package enrichment

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jonathan/jobscout/internal/fetchjd"
	"github.com/jonathan/jobscout/internal/types"
)

// Fetcher is the description-fetching collaborator.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetchjd.Details, error)
}

// Checkpoint persists the current state of the full collection. It is called
// mid-stage so an interrupted run still leaves a usable partial file.
type Checkpoint func(records []types.JobRecord) error

// Progress reports per-item progress to the caller.
type Progress func(done, total int, message string)

// Options tune pacing and checkpoint cadence. The delays are politeness
// toward the remote site, not a correctness requirement.
type Options struct {
	DelayMin        time.Duration
	DelayMax        time.Duration
	CheckpointEvery int
}

// DefaultOptions mirrors the pacing the site tolerates in practice.
func DefaultOptions() Options {
	return Options{
		DelayMin:        2 * time.Second,
		DelayMax:        5 * time.Second,
		CheckpointEvery: 5,
	}
}

// Enrich processes jobs in input order, fetching a description for every
// record that lacks one. The returned slice always contains one record per
// input record. Only context cancellation and checkpoint write failures abort
// the stage; per-item fetch errors are logged and absorbed.
func Enrich(ctx context.Context, jobs []types.JobRecord, fetcher Fetcher, opts Options, checkpoint Checkpoint, onProgress Progress) ([]types.JobRecord, error) {
	if opts.CheckpointEvery <= 0 {
		opts.CheckpointEvery = DefaultOptions().CheckpointEvery
	}

	out := make([]types.JobRecord, len(jobs))
	copy(out, jobs)

	for i := range out {
		job := &out[i]

		if onProgress != nil {
			onProgress(i, len(out), fmt.Sprintf("fetching description for job %s", job.JobID))
		}

		if !job.HasDescription() {
			if err := sleepJitter(ctx, opts.DelayMin, opts.DelayMax); err != nil {
				return nil, err
			}

			details, err := fetcher.Fetch(ctx, job.URL)
			if err != nil {
				// Keep the original record; absence of a description is
				// recorded, the job itself is never dropped.
				log.Printf("enrichment: fetch failed for job %s: %v", job.JobID, err)
			} else {
				merge(job, details)
			}
		}

		if (i+1)%opts.CheckpointEvery == 0 && checkpoint != nil {
			if err := checkpoint(out); err != nil {
				return nil, fmt.Errorf("checkpoint after %d jobs failed: %w", i+1, err)
			}
		}
	}

	return out, nil
}

// merge copies fetched values into the record. The description is always
// taken; info fields only fill gaps so a best-effort page parse never
// clobbers data discovery already captured.
func merge(job *types.JobRecord, details *fetchjd.Details) {
	if details.Description != "" {
		job.Description = details.Description
	}
	if job.Title == nil {
		job.Title = details.Title
	}
	if job.Company == nil {
		job.Company = details.Company
	}
	if job.Location == nil {
		job.Location = details.Location
	}
}

// sleepJitter pauses for a uniformly random duration in [min, max],
// returning early if the context is cancelled.
func sleepJitter(ctx context.Context, min, max time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if max <= 0 {
		return nil
	}
	d := min
	if max > min {
		d += time.Duration(rand.Int63n(int64(max - min)))
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
