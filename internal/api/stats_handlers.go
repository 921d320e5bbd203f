package api

import (
	"net/http"

	"github.com/vytor/lumina/internal/models"
)

func (s *Server) handleFlashcardStats(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	ctx := r.Context()

	summary, err := s.StatsService.GetFlashcardStats(ctx, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	subjects, err := s.StatsService.GetFlashcardSubjectStats(ctx, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if subjects == nil {
		subjects = []models.FlashcardSubjectStat{}
	}
	timing, err := s.StatsService.GetFlashcardTimeStats(ctx, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"summary":  summary,
		"subjects": subjects,
		"timing":   timing,
	})
}
