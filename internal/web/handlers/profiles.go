package handlers

import (
	"net/http"

	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/go-chi/chi/v5"
)

// ProfilesHandler serves the NIOSH category reference data.
type ProfilesHandler struct {
	profiles *niosh.ProfileSet
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(profiles *niosh.ProfileSet) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles}
}

// ProfilesResponse is the full reference data payload.
type ProfilesResponse struct {
	Survey     niosh.SurveyStats       `json:"survey"`
	Categories []niosh.CategoryProfile `json:"categories"`
}

// List returns all category profiles with the survey statistics.
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ProfilesResponse{
		Survey:     h.profiles.Survey(),
		Categories: h.profiles.Profiles(),
	})
}

// Get returns a single category profile.
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	profile, ok := h.profiles.Get(niosh.Category(category))
	if !ok {
		respondError(w, http.StatusNotFound, "unknown category")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
