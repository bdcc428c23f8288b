package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Run states as exposed by the status endpoint.
const (
	StateIdle       = "idle"
	StateProcessing = "processing"
	StateCompleted  = "completed"
	StateError      = "error"
)

// Snapshot is a point-in-time copy of the run status, safe to serialize.
type Snapshot struct {
	RunID     string `json:"run_id,omitempty"`
	State     string `json:"state"`
	Stage     string `json:"stage,omitempty"`
	Message   string `json:"message,omitempty"`
	Progress  int    `json:"progress"`
	Total     int    `json:"total"`
	Error     string `json:"error,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Status tracks the state of the current (or last) pipeline run. All methods
// are safe for concurrent use.
type Status struct {
	mu   sync.Mutex
	snap Snapshot
	now  func() time.Time
}

// NewStatus returns an idle status tracker.
func NewStatus() *Status {
	return &Status{snap: Snapshot{State: StateIdle}, now: time.Now}
}

// Start transitions to processing under a fresh run ID and returns that ID.
func (s *Status) Start(stage string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	runID := uuid.NewString()
	s.snap = Snapshot{
		RunID:     runID,
		State:     StateProcessing,
		Stage:     stage,
		UpdatedAt: s.now().Format(time.RFC3339),
	}
	return runID
}

// Update records progress within the current run.
func (s *Status) Update(stage, message string, progress, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Stage = stage
	s.snap.Message = message
	s.snap.Progress = progress
	s.snap.Total = total
	s.snap.UpdatedAt = s.now().Format(time.RFC3339)
}

// Complete marks the run finished.
func (s *Status) Complete(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.State = StateCompleted
	s.snap.Message = message
	s.snap.Error = ""
	s.snap.UpdatedAt = s.now().Format(time.RFC3339)
}

// Fail marks the run failed with the given error.
func (s *Status) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.State = StateError
	if err != nil {
		s.snap.Error = err.Error()
	}
	s.snap.UpdatedAt = s.now().Format(time.RFC3339)
}

// Reset returns the tracker to idle, discarding the previous run.
func (s *Status) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{State: StateIdle}
}

// Current returns a copy of the current status.
func (s *Status) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
