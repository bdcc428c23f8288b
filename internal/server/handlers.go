package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/jobscout/internal/searchurl"
	"github.com/jonathan/jobscout/internal/store"
)

// maxResumeSize caps uploaded resume PDFs at 16 MiB.
const maxResumeSize = 16 << 20

// resumePreviewLen is how much extracted text the upload response echoes back.
const resumePreviewLen = 500

// downloadable is the allow-list for the download endpoint. Anything else,
// path tricks included, is refused.
var downloadable = map[string]string{
	store.FileJobs:     "application/json",
	store.FileEnriched: "application/json",
	store.FileAnalysis: "application/json",
	store.FileResume:   "application/json",
	store.FileReport:   "text/plain; charset=utf-8",
}

func (s *Server) handleGenerateURL(w http.ResponseWriter, r *http.Request) {
	params := searchurl.DefaultParams()
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &params); err != nil {
			errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	jsonResponse(w, http.StatusOK, map[string]string{"url": params.Build()})
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if !s.running.TryAcquire(1) {
		errorResponse(w, http.StatusConflict, "a pipeline run is already in progress")
		return
	}
	defer s.running.Release(1)

	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize)
	file, header, err := r.FormFile("resume")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "missing resume file")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		errorResponse(w, http.StatusBadRequest, "only PDF resumes are supported")
		return
	}

	pdfPath := s.cfg.Pipeline.Store().Path(store.FileResumePDF)
	if err := saveUpload(pdfPath, file); err != nil {
		errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("could not save upload: %v", err))
		return
	}

	data, err := s.cfg.Pipeline.ProcessResume(r.Context(), s.cfg.LLM, pdfPath)
	if err != nil {
		errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	preview := data.Text
	if len(preview) > resumePreviewLen {
		preview = preview[:resumePreviewLen] + "..."
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"message":     "resume processed",
		"preview":     preview,
		"structured":  data.Structured,
		"uploaded_at": data.UploadedAt,
	})
}

func (s *Server) handleCollectJobs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SearchURL string `json:"search_url"`
		MaxJobs   int    `json:"max_jobs"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	searchURL := req.SearchURL
	if searchURL == "" {
		searchURL = s.cfg.SearchURL
	}
	if searchURL == "" {
		searchURL = searchurl.DefaultParams().Build()
	}
	opts := s.cfg.DiscoveryOpts
	if req.MaxJobs > 0 {
		opts.MaxJobs = req.MaxJobs
	}

	if !s.running.TryAcquire(1) {
		errorResponse(w, http.StatusConflict, "a pipeline run is already in progress")
		return
	}

	runID := s.cfg.Pipeline.Status().Start("collecting")
	go func() {
		defer s.running.Release(1)
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RunTimeout)
		defer cancel()

		sess, closeSession, err := s.cfg.Sessions(ctx)
		if err != nil {
			s.cfg.Pipeline.Status().Fail(fmt.Errorf("could not open browser session: %w", err))
			return
		}
		defer closeSession()

		enriched, err := s.cfg.Pipeline.CollectJobs(ctx, sess, searchURL, opts, s.cfg.Fetcher, s.cfg.EnrichOpts)
		if err != nil {
			s.cfg.Pipeline.Status().Fail(err)
			return
		}
		s.cfg.Pipeline.Status().Complete(fmt.Sprintf("collected %d jobs", len(enriched)))
	}()

	jsonResponse(w, http.StatusAccepted, map[string]string{
		"run_id":  runID,
		"message": "collection started",
	})
}

func (s *Server) handleAnalyzeMatches(w http.ResponseWriter, r *http.Request) {
	if !s.running.TryAcquire(1) {
		errorResponse(w, http.StatusConflict, "a pipeline run is already in progress")
		return
	}

	runID := s.cfg.Pipeline.Status().Start("analyzing")
	go func() {
		defer s.running.Release(1)
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RunTimeout)
		defer cancel()

		results, err := s.cfg.Pipeline.AnalyzeMatches(ctx, s.cfg.LLM)
		if err != nil {
			s.cfg.Pipeline.Status().Fail(err)
			return
		}
		s.cfg.Pipeline.Status().Complete(fmt.Sprintf("analyzed %d jobs", len(results)))
	}()

	jsonResponse(w, http.StatusAccepted, map[string]string{
		"run_id":  runID,
		"message": "analysis started",
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.cfg.Pipeline.Results()
	if err != nil {
		if errors.Is(err, store.ErrStageNotRun) {
			errorResponse(w, http.StatusNotFound, "no analysis results yet")
			return
		}
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, results)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if !s.running.TryAcquire(1) {
		errorResponse(w, http.StatusConflict, "a pipeline run is already in progress")
		return
	}
	defer s.running.Release(1)

	if err := s.cfg.Pipeline.Reset(); err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "pipeline reset"})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	contentType, ok := downloadable[name]
	if !ok {
		errorResponse(w, http.StatusForbidden, "file not available for download")
		return
	}

	path := s.cfg.Pipeline.Store().Path(name)
	f, err := os.Open(path)
	if err != nil {
		errorResponse(w, http.StatusNotFound, "file not generated yet")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := io.Copy(w, f); err != nil {
		// Headers are already out; nothing left to do but log.
		log.Printf("download of %s interrupted: %v", name, err)
	}
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
