package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", s.handleListProfiles)
		r.Post("/profiles", s.handleCreateProfile)
		r.Get("/profiles/{id}", s.handleGetProfile)
		r.Delete("/profiles/{id}", s.handleDeleteProfile)

		r.Group(func(r chi.Router) {
			r.Use(s.profileMiddleware)

			r.Get("/subjects", s.handleListSubjects)
			r.Post("/subjects", s.handleCreateSubject)
			r.Post("/sessions", s.handleSubmitSession)

			r.Get("/flashcards", s.handleListFlashcards)
			r.Post("/flashcards", s.handleAddFlashcards)
			r.Get("/flashcards/due", s.handleDueFlashcards)
			r.Get("/flashcards/{id}", s.handleGetFlashcard)
			r.Delete("/flashcards/{id}", s.handleDeleteFlashcard)

			r.Post("/reviews", s.handleStartReview)
			r.Get("/reviews/{id}", s.handleGetReview)
			r.Post("/reviews/{id}/reveal", s.handleRevealReview)
			r.Post("/reviews/{id}/rate", s.handleRateReview)
			r.Delete("/reviews/{id}", s.handleCloseReview)

			r.Get("/stats/flashcards", s.handleFlashcardStats)

			r.Get("/achievements", s.handleListAchievements)
			r.Get("/pet", s.handleGetPet)
			r.Post("/pet", s.handleAdoptPet)
		})
	})
	return r
}
