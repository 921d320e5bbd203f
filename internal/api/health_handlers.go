package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/lumina/internal/errors"
	"github.com/vytor/lumina/internal/logger"
)

// handleHealth reports liveness and always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady returns 200 once the database answers a ping, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.DB != nil {
		if err := s.DB.PingContext(ctx); err != nil {
			log.Warn("readiness check failed - database: %v", err)
			handleError(w, r, errors.NewUnavailableError("database unavailable"))
			return
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":          "ready",
		"review_sessions": s.ReviewService.ActiveSessions(),
	})
}
