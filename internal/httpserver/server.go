// Package httpserver exposes the solver over HTTP.
//
// Endpoints:
//   - GET  /health
//   - POST /im_size              multipart "image", returns its pixel size
//   - POST /solve                solve request document, returns the moves and a solution id
//   - GET  /solution/{id}        animated GIF of the solution
//   - GET  /solution/{id}/moves  stored move list
//   - GET  /solve/ws             websocket: send a solve request, receive progress and the result
package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/go-ricrob/photosolver/internal/store"
)

// Options configures the solving behaviour of the server.
type Options struct {
	Workers      int
	MaxStates    int
	SolveTimeout time.Duration
	FrameDelay   time.Duration
	ClientOrigin string
}

// Server bundles router, solution store and solver options.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.SolveTimeout <= 0 {
		opts.SolveTimeout = 30 * time.Second
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "*"
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.cors)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "photosolver",
			"endpoints": []string{"/health", "POST /im_size", "POST /solve", "/solution/{id}", "/solution/{id}/moves", "/solve/ws"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// the solve timeout applies inside the handlers, the grace period covers rendering and storing
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(opts.SolveTimeout + 10*time.Second))
		r.Post("/im_size", s.handleImageSize)
		r.Post("/solve", s.handleSolve)
		r.Get("/solution/{id}", s.handleSolutionGIF)
		r.Get("/solution/{id}/moves", s.handleSolutionMoves)
	})
	s.r.Get("/solve/ws", s.handleSolveWS)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Msg: "error", Error: "not_found", Detail: r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(started)).
			Str("requestId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ helpers ------------------------------------

type errorRes struct {
	Msg    string `json:"msg"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorRes{Msg: "error", Error: code, Detail: err.Error()})
}
