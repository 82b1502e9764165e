package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lazypower/duedays/internal/engine"
	"github.com/lazypower/duedays/internal/store"
)

type scoreJSON struct {
	engine.Score
	Tier   string `json:"tier"`
	Advice string `json:"advice"`
}

func newScoreJSON(s engine.Score) scoreJSON {
	return scoreJSON{Score: s, Tier: s.Tier().String(), Advice: s.Tier().Advice()}
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks := s.tracker.List()
	if tasks == nil {
		tasks = []store.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Days *int   `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Days == nil {
		writeError(w, http.StatusBadRequest, "days required")
		return
	}

	err := s.tracker.Add(req.Name, *req.Days)
	if errors.Is(err, engine.ErrInvalidTask) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Errorw("add task failed", "name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"task":  store.Task{Name: req.Name, Days: *req.Days},
		"score": newScoreJSON(s.tracker.Score()),
	})
}

func (s *Server) handleDoneTask(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	n, err := s.tracker.Done(name)
	if errors.Is(err, engine.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.log.Errorw("done task failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"removed": n,
		"score":   newScoreJSON(s.tracker.Score()),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newScoreJSON(s.tracker.Score()))
}
