package rest

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driving"
	"github.com/custodia-labs/papersum/internal/logger"
)

//go:embed index.html
var indexHTML []byte

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// errMissingPaperID is the exact client-facing message for a missing ID.
const errMissingPaperID = "Missing paper_id"

// Server serves the summarisation routes.
type Server struct {
	summarise driving.SummariseService
	router    *mux.Router
	version   string
	mcp       http.Handler

	// runMu serialises pipeline runs; concurrent triggers queue.
	runMu sync.Mutex
}

// Option configures the server.
type Option func(*Server)

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithMCPHandler mounts an MCP endpoint at /mcp.
func WithMCPHandler(h http.Handler) Option {
	return func(s *Server) {
		s.mcp = h
	}
}

// NewServer creates the HTTP server.
func NewServer(summarise driving.SummariseService, opts ...Option) (*Server, error) {
	if summarise == nil {
		return nil, errors.New("rest: summarise service is required")
	}

	s := &Server{
		summarise: summarise,
		router:    mux.NewRouter(),
		version:   "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled.
// There is no write timeout: a batch can take minutes.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) routes() {
	s.router.Use(requestIDMiddleware)

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/summarize_all", s.handleSummariseAll).Methods(http.MethodGet)
	s.router.HandleFunc("/summarize_single", s.handleSummariseSingle).Methods(http.MethodPost)

	if s.mcp != nil {
		s.router.PathPrefix("/mcp").Handler(s.mcp)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) handleSummariseAll(w http.ResponseWriter, r *http.Request) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	report, err := s.summarise.SummariseAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeReport(w, report)
}

func (s *Server) handleSummariseSingle(w http.ResponseWriter, r *http.Request) {
	// ParseForm merges the urlencoded body with the query string.
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form body"})
		return
	}
	paperID := strings.TrimSpace(r.FormValue("paper_id"))
	if paperID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMissingPaperID})
		return
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	report, err := s.summarise.SummariseOne(r.Context(), paperID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeReport(w, report)
}

func writeReport(w http.ResponseWriter, report *domain.Report) {
	if report.Summaries == nil {
		report.Summaries = []domain.PipelineOutcome{}
	}
	writeJSON(w, http.StatusOK, report)
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrMissingIdentifier) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMissingPaperID})
		return
	}
	logger.Error("%s %s [%s]: %v", r.Method, r.URL.Path, w.Header().Get(RequestIDHeader), err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": fmt.Sprintf("summarisation failed: %v", err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the status code for access logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses (MCP) working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// requestIDMiddleware tags each request with an ID, reusing the caller's if sent.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		logger.Debug("%s %s %d %s [%s]", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), id)
	})
}
