package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/lumina/internal/models"
	"github.com/vytor/lumina/internal/services"
)

type addFlashcardsRequest struct {
	SubjectID string             `json:"subject_id" validate:"required"`
	Cards     []models.CardDraft `json:"cards" validate:"required,min=1,max=50,dive"`
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	dueOnly, err := queryBool(r, "due")
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, total, err := s.FlashcardService.ListFlashcards(r.Context(), profile.ID, services.DeckQuery{
		SubjectID: r.URL.Query().Get("subject_id"),
		DueOnly:   dueOnly,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"flashcards": cards, "total": total})
}

func (s *Server) handleDueFlashcards(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	count, err := s.FlashcardService.DueCount(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"due": count})
}

func (s *Server) handleAddFlashcards(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req addFlashcardsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.FlashcardService.AddFlashcards(r.Context(), profile.ID, req.SubjectID, req.Cards)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{"flashcards": cards})
}

func (s *Server) handleGetFlashcard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	card, err := s.FlashcardService.GetFlashcard(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	if err := s.FlashcardService.DeleteFlashcard(r.Context(), profile.ID, chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
