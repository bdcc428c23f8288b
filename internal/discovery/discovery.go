// Package discovery enumerates distinct job postings from an authenticated
// search session, deduplicating by job ID up to a target count.
package discovery

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/jobscout/internal/types"
)

// jobViewURL is the canonical posting URL prefix; the full URL is derived
// deterministically from the job ID.
const jobViewURL = "https://www.linkedin.com/jobs/view/"

// BasicInfo is the best-effort metadata visible from the search list view.
// Nil fields mean the view did not expose that value.
type BasicInfo struct {
	Title    *string
	Company  *string
	Location *string
}

// Session is the browsing session the stage drives. The chromedp-backed
// implementation lives in the browser package; tests use scripted fakes.
type Session interface {
	// Authenticate establishes a verified logged-in state, trying the
	// configured login strategies in priority order.
	Authenticate(ctx context.Context) error
	// Open navigates to the search results page.
	Open(ctx context.Context, searchURL string) error
	// ListVisibleIDs returns every job identifier currently in view.
	ListVisibleIDs(ctx context.Context) ([]string, error)
	// RevealMore tries to surface more results (scroll or pagination) and
	// reports whether it made progress.
	RevealMore(ctx context.Context) (bool, error)
	// AdvanceItem selects the next job in the list as a secondary way to
	// surface new identifiers, reporting whether it moved.
	AdvanceItem(ctx context.Context) (bool, error)
	// BasicInfo fetches list-view metadata for one job.
	BasicInfo(ctx context.Context, jobID string) (BasicInfo, error)
}

// AuthError means no login strategy produced an authenticated session.
// Discovery returns no records and the pipeline halts before enrichment.
type AuthError struct {
	Cause error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication failed: %v", e.Cause)
	}
	return "authentication failed"
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// Progress reports collection progress to the caller.
type Progress func(collected, target int, message string)

// Options tune the collection loop.
type Options struct {
	// MaxJobs is the target quota; collection stops once reached.
	MaxJobs int
	// MaxStale bounds consecutive rounds that surface no new identifiers.
	// The loop terminates (not an error) once the budget is spent, so a
	// page state where neither scrolling nor advancing works cannot spin
	// forever.
	MaxStale int
}

// DefaultOptions returns the standard collection limits.
func DefaultOptions() Options {
	return Options{MaxJobs: 50, MaxStale: 3}
}

// JobURL derives the canonical posting URL for a job ID.
func JobURL(jobID string) string {
	return jobViewURL + jobID
}

// Collect authenticates the session, opens the search URL and gathers up to
// opts.MaxJobs distinct JobRecords. Returning fewer than the quota because
// the result set is exhausted is an incomplete result, not an error.
func Collect(ctx context.Context, sess Session, searchURL string, opts Options, onProgress Progress) ([]types.JobRecord, error) {
	if opts.MaxJobs <= 0 {
		opts.MaxJobs = DefaultOptions().MaxJobs
	}
	if opts.MaxStale <= 0 {
		opts.MaxStale = DefaultOptions().MaxStale
	}

	if err := sess.Authenticate(ctx); err != nil {
		return nil, &AuthError{Cause: err}
	}

	if err := sess.Open(ctx, searchURL); err != nil {
		return nil, fmt.Errorf("failed to open search results: %w", err)
	}

	seen := make(map[string]bool)
	var collected []types.JobRecord
	stale := 0

	for len(collected) < opts.MaxJobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ids, err := sess.ListVisibleIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list visible jobs: %w", err)
		}

		newThisRound := 0
		for _, id := range ids {
			if id == "" || seen[id] || len(collected) >= opts.MaxJobs {
				continue
			}
			seen[id] = true
			newThisRound++

			collected = append(collected, makeRecord(ctx, sess, id))
			if onProgress != nil {
				onProgress(len(collected), opts.MaxJobs, fmt.Sprintf("collected job %s", id))
			}
		}

		if len(collected) >= opts.MaxJobs {
			break
		}

		progressed, err := sess.RevealMore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reveal more results: %w", err)
		}
		if !progressed {
			progressed, err = sess.AdvanceItem(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to advance to next item: %w", err)
			}
		}

		// A round that surfaces no new identifiers spends the budget even
		// when the page still reports movement; a pagination control that
		// keeps acting while serving duplicates must not keep the loop alive.
		if newThisRound == 0 {
			stale++
			if stale >= opts.MaxStale {
				break
			}
		} else {
			stale = 0
		}
	}

	return collected, nil
}

// makeRecord builds a JobRecord for an identifier. An info miss still yields
// a record with nil fields: absence of detail is not absence of the job.
func makeRecord(ctx context.Context, sess Session, id string) types.JobRecord {
	record := types.JobRecord{
		JobID:     id,
		URL:       JobURL(id),
		Timestamp: float64(time.Now().UnixNano()) / float64(time.Second),
	}

	info, err := sess.BasicInfo(ctx, id)
	if err != nil {
		log.Printf("discovery: no basic info for job %s: %v", id, err)
		return record
	}

	record.Title = info.Title
	record.Company = info.Company
	record.Location = info.Location
	return record
}
