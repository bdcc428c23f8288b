// Package server exposes the pipeline over a small JSON HTTP API: upload a
// resume, kick off collection and analysis, poll status, fetch results.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/jobscout/internal/discovery"
	"github.com/jonathan/jobscout/internal/enrichment"
	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/pipeline"
)

// SessionFactory opens a fresh browsing session for a collection run. The
// returned closer releases the session's resources.
type SessionFactory func(ctx context.Context) (discovery.Session, func(), error)

// Config wires the server's collaborators. LLM, Sessions and Fetcher are
// injectable so handlers can be tested without Chrome or a live model.
type Config struct {
	Pipeline *pipeline.Pipeline
	LLM      llm.Client
	Sessions SessionFactory
	Fetcher  enrichment.Fetcher

	SearchURL     string
	DiscoveryOpts discovery.Options
	EnrichOpts    enrichment.Options

	// RunTimeout bounds each background run. Zero means one hour.
	RunTimeout time.Duration
}

// Server handles the control API. One pipeline run may be in flight at a
// time; the stage files are shared state, so concurrent runs are refused
// rather than interleaved.
type Server struct {
	cfg     Config
	running *semaphore.Weighted
	mux     *http.ServeMux
}

// New builds the server and its routes.
func New(cfg Config) *Server {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = time.Hour
	}
	s := &Server{
		cfg:     cfg,
		running: semaphore.NewWeighted(1),
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /api/results", s.handleResults)
	s.mux.HandleFunc("GET /api/download/{name}", s.handleDownload)
	s.mux.HandleFunc("POST /api/generate-url", s.handleGenerateURL)
	s.mux.HandleFunc("POST /api/upload-resume", s.handleUploadResume)
	s.mux.HandleFunc("POST /api/collect-jobs", s.handleCollectJobs)
	s.mux.HandleFunc("POST /api/analyze-matches", s.handleAnalyzeMatches)
	s.mux.HandleFunc("POST /api/reset", s.handleReset)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe runs the API on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("API listening on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, s.cfg.Pipeline.Status().Current())
}

func jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}
