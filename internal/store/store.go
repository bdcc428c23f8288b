// Package store provides the durable, file-backed record collections that
// carry pipeline state between stages. Every stage owns exactly one file, and
// a save always rewrites the whole collection so the file is a complete
// snapshot rather than an append log.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Stage output file names. Each file is written by exactly one stage and
// read-only to everything downstream.
const (
	FileJobs     = "collected_jobs.json"
	FileEnriched = "jobs_with_descriptions.json"
	FileAnalysis = "analysis_results.json"
	FileReport   = "job_match_report.txt"
	FileResume   = "resume_data.json"
	// FileResumePDF is the uploaded source document the resume stage
	// extracts from.
	FileResumePDF = "resume.pdf"
)

// ErrStageNotRun indicates a stage file is missing because the stage that
// produces it has not run. Callers treat this as "prerequisite stage not run"
// and halt before the dependent stage, not as a crash.
var ErrStageNotRun = errors.New("stage output not found")

// stageFiles lists every artifact a reset must clear.
var stageFiles = []string{FileJobs, FileEnriched, FileAnalysis, FileReport, FileResume, FileResumePDF}

// Store manages the stage files inside a single data directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory the store is rooted at.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute path of a stage file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Exists reports whether a stage file is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Load reads a stage file into a record slice. A missing file yields
// ErrStageNotRun so the caller can distinguish "not run yet" from corruption.
func Load[T any](s *Store, name string) ([]T, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", name, ErrStageNotRun)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return records, nil
}

// Save overwrites a stage file with the full record collection. The write
// goes to a temp file first and is renamed into place, so readers never see
// a half-written snapshot.
func Save[T any](s *Store, name string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return s.writeAtomic(name, data)
}

// LoadObject reads a single-object artifact (such as the resume data file).
func LoadObject[T any](s *Store, name string) (*T, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", name, ErrStageNotRun)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var obj T
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return &obj, nil
}

// SaveObject overwrites a single-object artifact.
func SaveObject[T any](s *Store, name string, obj *T) error {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return s.writeAtomic(name, data)
}

// SaveText overwrites a plain-text artifact such as the report.
func (s *Store) SaveText(name, content string) error {
	return s.writeAtomic(name, []byte(content))
}

// LoadText reads a plain-text artifact. Missing files yield ErrStageNotRun.
func (s *Store) LoadText(name string) (string, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", name, ErrStageNotRun)
		}
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

// Reset removes every stage file. Missing files are not an error.
func (s *Store) Reset() error {
	for _, name := range stageFiles {
		if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) writeAtomic(name string, data []byte) error {
	tmp := s.Path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.Path(name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
