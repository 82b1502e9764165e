package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lazypower/duedays/internal/engine"
	"go.uber.org/zap"
)

// Server is the local duedays status API. It shares a Tracker with the rest
// of the process, so every write goes through the same persistence path as
// the shell.
type Server struct {
	tracker *engine.Tracker
	log     *zap.SugaredLogger
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server over tracker.
func New(tracker *engine.Tracker, log *zap.SugaredLogger, version string) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Server{
		tracker: tracker,
		log:     log,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(s.requestLog)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/tasks", s.handleListTasks)
		r.Post("/tasks", s.handleAddTask)
		r.Delete("/tasks/{name}", s.handleDoneTask)
		r.Get("/score", s.handleScore)
	})

	s.router = r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debugw("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"tasks":   s.tracker.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
