package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/mates/internal/evaluate"
	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/session"
)

const maxBodyBytes = 64 << 10

type categoryView struct {
	ID        exercise.Category `json:"id"`
	Label     string            `json:"label"`
	OpenEnded bool              `json:"openEnded"`
}

type createExerciseRequest struct {
	Category string `json:"category"`
}

type evaluationRequest struct {
	Exercise *exercise.Exercise `json:"exercise"`
	Answer   string             `json:"answer"`
}

type evaluationResponse struct {
	Result   *exercise.EvaluationResult `json:"result"`
	Outcome  gamification.Outcome       `json:"outcome"`
	Progress gamification.State         `json:"progress"`
}

type nicknameRequest struct {
	Nickname string `json:"nickname"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := exercise.Categories()
	out := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryView{ID: c, Label: c.Label(), OpenEnded: c.OpenEnded()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	category, err := exercise.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ex, err := s.session.Next(r.Context(), category)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sub, err := s.session.Submit(r.Context(), req.Exercise, req.Answer)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, evaluationResponse{
		Result:   sub.Result,
		Outcome:  sub.Outcome,
		Progress: sub.Progress,
	})
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.State())
}

func (s *Server) handleSetNickname(w http.ResponseWriter, r *http.Request) {
	var req nicknameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	state, err := s.tracker.SetNickname(r.Context(), req.Nickname)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	state, err := s.tracker.Reset(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Summary())
}

// fail maps domain errors to client errors and everything else to 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, exercise.ErrUnknownCategory),
		errors.Is(err, evaluate.ErrEmptyAnswer),
		errors.Is(err, gamification.ErrEmptyNickname),
		errors.Is(err, session.ErrNoExercise):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logging.FromContext(r.Context()).WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Logger.WithError(err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
