package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/ctfbruce/LiftIt/internal/session"
	"github.com/ctfbruce/LiftIt/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var serr *session.StorageError
	switch {
	case errors.As(err, &serr):
		// Nothing was applied; the client may retry the same request.
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":     serr.Error(),
			"retryable": true,
		})
	case errors.Is(err, storage.ErrProgramNotFound),
		errors.Is(err, storage.ErrExerciseNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, program.ErrNoExercisesScheduled):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, program.ErrSetCountMismatch),
		errors.Is(err, program.ErrMissingEntries):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func programID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return uuid.Nil, false
	}
	return id, true
}

// --- Exercise catalog ---

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListExercises(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	ex := program.Exercise{ID: uuid.New(), Name: req.Name, Notes: req.Notes}
	if err := s.store.InsertExercise(r.Context(), ex); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	ex, err := s.store.GetExercise(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	if err := s.store.DeleteExercise(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Programs ---

// slotRequest is one slot in a program or workout creation request.
type slotRequest struct {
	DayIndex   int       `json:"dayIndex"`
	Order      int       `json:"order"`
	GroupLabel string    `json:"groupLabel"`
	ExerciseID uuid.UUID `json:"exerciseId"`
	Sets       int       `json:"sets"`
	RepMin     int       `json:"repMin"`
	RepMax     int       `json:"repMax"`
	RepGoal    int       `json:"repGoal"`
	WeightGoal float64   `json:"weightGoal"`
}

func (sr slotRequest) validate() string {
	switch {
	case sr.Sets < 1:
		return "sets must be at least 1"
	case sr.RepMin > sr.RepMax:
		return "repMin must not exceed repMax"
	case sr.RepGoal < sr.RepMin || sr.RepGoal > sr.RepMax:
		return "repGoal must lie between repMin and repMax"
	case sr.WeightGoal < 0:
		return "weightGoal must not be negative"
	}
	return ""
}

func (sr slotRequest) toSlot(programID uuid.UUID) program.Slot {
	return program.Slot{
		ID:         uuid.New(),
		ProgramID:  programID,
		DayIndex:   sr.DayIndex,
		Order:      sr.Order,
		GroupLabel: sr.GroupLabel,
		ExerciseID: sr.ExerciseID,
		Sets:       sr.Sets,
		RepMin:     sr.RepMin,
		RepMax:     sr.RepMax,
		RepGoal:    sr.RepGoal,
		WeightGoal: sr.WeightGoal,
	}
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string        `json:"name"`
		Slots []slotRequest `json:"slots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	p := program.Program{ID: uuid.New(), Name: req.Name, CurrentDayIndex: 1}
	for _, sr := range req.Slots {
		if msg := sr.validate(); msg != "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
			return
		}
		if sr.DayIndex < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dayIndex must be at least 1"})
			return
		}
		p.Slots = append(p.Slots, sr.toSlot(p.ID))
	}

	if err := s.store.CreateProgram(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListPrograms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}
	p, err := s.store.Program(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteProgram(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}

	var req struct {
		DayIndex int           `json:"dayIndex"`
		Label    string        `json:"label"`
		Slots    []slotRequest `json:"slots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.DayIndex < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dayIndex must be at least 1"})
		return
	}
	if len(req.Slots) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "slots are required"})
		return
	}

	slots := make([]program.Slot, 0, len(req.Slots))
	for _, sr := range req.Slots {
		if msg := sr.validate(); msg != "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
			return
		}
		slots = append(slots, sr.toSlot(id))
	}

	if err := s.store.AddWorkout(r.Context(), id, req.DayIndex, req.Label, slots); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// --- Schedule & sessions ---

func (s *Server) handleTodaysGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}
	g, err := s.sessions.TodaysGroup(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleFinalizeSession(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}

	var req struct {
		Entries map[uuid.UUID][]program.SetEntry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	summary, err := s.sessions.FinalizeSession(r.Context(), id, req.Entries)
	if err != nil {
		s.log.Error("finalize error", "program", id, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}
	list, err := s.store.ListSessions(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// --- Draft buffer ---

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}

	var req struct {
		Entries map[uuid.UUID][]program.SetEntry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.sessions.SaveDraft(r.Context(), id, req.Entries); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLoadDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}
	entries, err := s.sessions.LoadDraft(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleCancelDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}
	if err := s.sessions.CancelDraft(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
