package server

import "net/http"

func (s *Service) handleListVolunteers(w http.ResponseWriter, r *http.Request) {
	volunteers, err := s.profiles.VolunteerDirectory(r.Context())
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"volunteers": volunteers})
}

func (s *Service) handleListOrganisations(w http.ResponseWriter, r *http.Request) {
	organisations, err := s.profiles.OrganisationDirectory(r.Context())
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"organisations": organisations})
}
