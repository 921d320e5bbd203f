package api

import (
	"net/http"
)

type adoptPetRequest struct {
	Name string `json:"name" validate:"required,max=32"`
	Kind string `json:"kind" validate:"required,oneof=geometry organic mech void"`
}

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	achievements, err := s.ProgressService.ListAchievements(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"achievements": achievements})
}

func (s *Server) handleGetPet(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	pet, err := s.ProgressService.GetPet(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, pet)
}

func (s *Server) handleAdoptPet(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req adoptPetRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	pet, err := s.ProgressService.AdoptPet(r.Context(), profile.ID, req.Name, req.Kind)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, pet)
}
