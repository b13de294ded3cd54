package server

import (
	"net/http"

	"communityconnect/internal/utils"
	"communityconnect/pkg/types"

	"github.com/alexedwards/flow"
)

type signupStatusForm struct {
	Status string `form:"status" validate:"required"`
	RoleID string `form:"role_id"`
}

func (s *Service) handleSignup(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	eventID := flow.Param(r.Context(), "id")

	result, err := s.signups.Create(r.Context(), identity, eventID)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		status := http.StatusCreated
		if result.AlreadySignedUp {
			status = http.StatusOK
		}
		respondJSON(w, status, map[string]any{
			"signup":            result.Signup,
			"already_signed_up": result.AlreadySignedUp,
		})
		return
	}

	http.Redirect(w, r, "/events/"+eventID, http.StatusSeeOther)
}

func (s *Service) handleRetractSignup(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	if err := s.signups.Retract(r.Context(), identity, flow.Param(r.Context(), "id")); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "retracted"})
		return
	}

	http.Redirect(w, r, "/me/signups", http.StatusSeeOther)
}

func (s *Service) handleMySignups(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	signups, err := s.signups.SignupsForVolunteer(r.Context(), identity)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"signups": signups})
}

func (s *Service) handleEventSignups(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	signups, err := s.signups.SignupsForEvent(r.Context(), identity, flow.Param(r.Context(), "id"))
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"signups": signups})
}

func (s *Service) handleSignupStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	var form signupStatusForm
	if err := decodeForm(r, &form); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	signup, err := s.signups.SetStatus(
		r.Context(),
		identity,
		flow.Param(r.Context(), "id"),
		types.SignupStatus(form.Status),
		utils.NilIfEmpty(form.RoleID),
	)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, signup)
		return
	}

	http.Redirect(w, r, "/events/"+signup.EventID+"/signups", http.StatusSeeOther)
}
