package api

import (
	"net/http"

	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/services"
)

type createSubjectRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type submitSessionRequest struct {
	SubjectID       string `json:"subject_id" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Notes           string `json:"notes" validate:"max=20000"`
	Mood            string `json:"mood" validate:"max=32"`
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	subjects, err := s.StudyService.ListSubjects(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"subjects": subjects})
}

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req createSubjectRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	subject, err := s.StudyService.CreateSubject(r.Context(), profile.ID, req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, subject)
}

func (s *Server) handleSubmitSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())

	var req submitSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.StudyService.SubmitSession(r.Context(), profile.ID, services.SessionInput{
		SubjectID:       req.SubjectID,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		Mood:            req.Mood,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("study session recorded: minutes=%d, generation_queued=%t", req.DurationMinutes, result.GenerationQueued)
	writeJSON(w, r, http.StatusCreated, result)
}
