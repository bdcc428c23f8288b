package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/jobscout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	jobs := []types.JobRecord{
		{
			JobID:     "4266063414",
			URL:       "https://www.linkedin.com/jobs/view/4266063414",
			Title:     strPtr("AI Engineer"),
			Company:   strPtr("Acme Corp"),
			Location:  strPtr("Remote, US"),
			Timestamp: 1724800000.5,
		},
		{
			JobID:     "4266063415",
			URL:       "https://www.linkedin.com/jobs/view/4266063415",
			Timestamp: 1724800001.25,
		},
	}

	require.NoError(t, Save(s, FileJobs, jobs))

	loaded, err := Load[types.JobRecord](s, FileJobs)
	require.NoError(t, err)
	assert.Equal(t, jobs, loaded)
}

func TestLoadMissingFileIsStageNotRun(t *testing.T) {
	s := newTestStore(t)

	_, err := Load[types.JobRecord](s, FileEnriched)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStageNotRun)
}

func TestLoadCorruptFileIsNotStageNotRun(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(FileJobs), []byte("{not json"), 0o644))

	_, err := Load[types.JobRecord](s, FileJobs)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStageNotRun)
}

func TestSaveOverwritesWholeCollection(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, Save(s, FileJobs, []types.JobRecord{
		{JobID: "1"}, {JobID: "2"}, {JobID: "3"},
	}))
	require.NoError(t, Save(s, FileJobs, []types.JobRecord{
		{JobID: "9"},
	}))

	loaded, err := Load[types.JobRecord](s, FileJobs)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "9", loaded[0].JobID)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, Save(s, FileJobs, []types.JobRecord{{JobID: "1"}}))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, ".tmp", filepath.Ext(e.Name()))
	}
}

func TestObjectRoundTrip(t *testing.T) {
	s := newTestStore(t)

	data := &types.ResumeData{
		Text: "some resume text",
		Structured: &types.ResumeProfile{
			PersonalInfo: types.PersonalInfo{Name: "Jane Doe"},
		},
		UploadedAt: "2026-08-28T10:00:00Z",
	}
	require.NoError(t, SaveObject(s, FileResume, data))

	loaded, err := LoadObject[types.ResumeData](s, FileResume)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestTextRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveText(FileReport, "report body\n"))
	text, err := s.LoadText(FileReport)
	require.NoError(t, err)
	assert.Equal(t, "report body\n", text)

	_, err = s.LoadText("missing.txt")
	assert.ErrorIs(t, err, ErrStageNotRun)
}

func TestResetRemovesAllStageFiles(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, Save(s, FileJobs, []types.JobRecord{{JobID: "1"}}))
	require.NoError(t, Save(s, FileEnriched, []types.JobRecord{{JobID: "1"}}))
	require.NoError(t, Save(s, FileAnalysis, []types.AnalysisRecord{{JobID: "1"}}))
	require.NoError(t, s.SaveText(FileReport, "report"))
	require.NoError(t, SaveObject(s, FileResume, &types.ResumeData{Text: "t"}))
	require.NoError(t, os.WriteFile(s.Path(FileResumePDF), []byte("%PDF-1.4"), 0o644))

	require.NoError(t, s.Reset())

	// The uploaded source document goes too, not just the derived stages.
	for _, name := range []string{FileJobs, FileEnriched, FileAnalysis, FileReport, FileResume, FileResumePDF} {
		assert.False(t, s.Exists(name), "expected %s to be removed", name)
	}

	// Resetting an already-clean store is fine.
	require.NoError(t, s.Reset())
}
