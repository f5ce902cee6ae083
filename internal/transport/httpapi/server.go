// Package httpapi exposes the QA pipeline over a single JSON endpoint.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sandevgo/provostbot/internal/core"
	"github.com/sandevgo/provostbot/pkg/log"
)

type Pipeline interface {
	Ask(ctx context.Context, question string) (core.Result, error)
}

type Server struct {
	addr     string
	pipeline atomic.Pointer[Pipeline]
	server   *http.Server
}

func NewServer(addr string) *Server {
	return &Server{addr: addr}
}

// SetPipeline marks the server ready. Requests arriving before this returns
// get a 503.
func (s *Server) SetPipeline(p Pipeline) {
	s.pipeline.Store(&p)
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/qa", s.handleQA)
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      loggingMiddleware(ctx, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // two sequential oracle calls per request
	}

	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("starting http api")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

type qaRequest struct {
	Question *string `json:"question"`
}

func (s *Server) handleQA(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	p := s.pipeline.Load()
	if p == nil {
		writeError(w, http.StatusServiceUnavailable, "server not initialized")
		return
	}

	var req qaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == nil {
		writeError(w, http.StatusBadRequest, "request must be JSON with a 'question' field")
		return
	}

	res, err := (*p).Ask(r.Context(), *req.Question)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, core.ErrMissingQuestion):
		writeError(w, http.StatusBadRequest, "request must be JSON with a 'question' field")
	case errors.Is(err, core.ErrNotInitialized):
		writeError(w, http.StatusServiceUnavailable, "server not initialized")
	default:
		// Grounded-branch oracle failures land here: degrade, never leak the
		// underlying error to the caller.
		log.FromCtx(r.Context()).Error().Err(err).Msg("qa request failed")
		writeError(w, http.StatusBadGateway, "temporarily unable to answer, please try again")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func loggingMiddleware(ctx context.Context, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		// Carry the service logger into per-request contexts.
		r = r.WithContext(log.FromCtx(ctx).WithContext(r.Context()))
		next.ServeHTTP(w, r)
		log.FromCtx(ctx).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}
