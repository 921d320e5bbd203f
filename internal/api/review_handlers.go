package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/logger"
)

type rateRequest struct {
	Rating      *flashcard.Rating `json:"rating" validate:"required"`
	TimeSeconds float64           `json:"time_seconds" validate:"gte=0"`
}

func (s *Server) handleStartReview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	view, err := s.ReviewService.StartReview(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	status := http.StatusCreated
	if view.SessionID == "" {
		// Nothing due: no session was created.
		status = http.StatusOK
	}
	writeJSON(w, r, status, view)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	view, err := s.ReviewService.GetReview(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleRevealReview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	view, err := s.ReviewService.Reveal(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleRateReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	var req rateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.ReviewService.Rate(r.Context(), profile.ID, sessionID, *req.Rating, req.TimeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.WithFields(map[string]any{
		"session_id": sessionID,
		"rating":     req.Rating.String(),
	}).Debug("card rated")
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleCloseReview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	if err := s.ReviewService.Close(r.Context(), profile.ID, chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
