package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"communityconnect/internal/service"
	"communityconnect/internal/utils"
	"communityconnect/pkg/types"
)

const maxMediaUploadBytes = 5 << 20

type volunteerProfileForm struct {
	FirstName        string `form:"first_name" validate:"required"`
	LastName         string `form:"last_name" validate:"required"`
	Phone            string `form:"phone"`
	Address          string `form:"address"`
	DateOfBirth      string `form:"date_of_birth"`
	Availability     bool   `form:"availability"`
	EmergencyContact string `form:"emergency_contact"`
}

type organisationProfileForm struct {
	Name          string `form:"name" validate:"required"`
	ContactPerson string `form:"contact_person"`
	Phone         string `form:"phone"`
	Address       string `form:"address"`
	Website       string `form:"website"`
	Description   string `form:"description"`
}

type changePasswordForm struct {
	CurrentPassword string `form:"current_password" validate:"required"`
	NewPassword     string `form:"new_password" validate:"required,min=8"`
}

func (s *Service) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	switch identity.AccountType {
	case types.AccountTypeVolunteer:
		volunteer, err := s.profiles.Volunteer(r.Context(), identity)
		if err != nil {
			respondError(w, r, s.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"volunteer": volunteer})
	case types.AccountTypeOrganisation:
		organisation, err := s.profiles.Organisation(r.Context(), identity)
		if err != nil {
			respondError(w, r, s.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"organisation": organisation})
	default:
		respondError(w, r, s.logger, types.ErrUnauthenticated)
	}
}

func (s *Service) handlePostProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	switch identity.AccountType {
	case types.AccountTypeVolunteer:
		s.updateVolunteerProfile(w, r, identity)
	case types.AccountTypeOrganisation:
		s.updateOrganisationProfile(w, r, identity)
	default:
		respondError(w, r, s.logger, types.ErrUnauthenticated)
	}
}

func (s *Service) updateVolunteerProfile(w http.ResponseWriter, r *http.Request, identity *types.Identity) {
	var form volunteerProfileForm
	if err := decodeForm(r, &form); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	input := service.VolunteerProfileInput{
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		Phone:            utils.NilIfEmpty(form.Phone),
		Address:          utils.NilIfEmpty(form.Address),
		Availability:     form.Availability,
		EmergencyContact: utils.NilIfEmpty(form.EmergencyContact),
	}

	if form.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", form.DateOfBirth)
		if err != nil {
			respondError(w, r, s.logger, fmt.Errorf("date of birth: %w", types.ErrInvalidInput))
			return
		}
		input.DateOfBirth = &dob
	}

	volunteer, err := s.profiles.UpdateVolunteer(r.Context(), identity, input)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]any{"volunteer": volunteer})
		return
	}

	http.Redirect(w, r, "/me", http.StatusSeeOther)
}

func (s *Service) updateOrganisationProfile(w http.ResponseWriter, r *http.Request, identity *types.Identity) {
	var form organisationProfileForm
	if err := decodeForm(r, &form); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	organisation, err := s.profiles.UpdateOrganisation(r.Context(), identity, service.OrganisationProfileInput{
		Name:          form.Name,
		ContactPerson: utils.NilIfEmpty(form.ContactPerson),
		Phone:         utils.NilIfEmpty(form.Phone),
		Address:       utils.NilIfEmpty(form.Address),
		Website:       utils.NilIfEmpty(form.Website),
		Description:   utils.NilIfEmpty(form.Description),
	})
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]any{"organisation": organisation})
		return
	}

	http.Redirect(w, r, "/me", http.StatusSeeOther)
}

func (s *Service) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	var form changePasswordForm
	if err := decodeForm(r, &form); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if err := s.profiles.ChangePassword(r.Context(), identity, form.CurrentPassword, form.NewPassword); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
		return
	}

	http.Redirect(w, r, "/me", http.StatusSeeOther)
}

func (s *Service) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	if s.media == nil {
		respondError(w, r, s.logger, fmt.Errorf("media uploads are not configured: %w", types.ErrInvalidInput))
		return
	}

	if err := r.ParseMultipartForm(maxMediaUploadBytes); err != nil {
		respondError(w, r, s.logger, fmt.Errorf("parse upload: %w", types.ErrInvalidInput))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, s.logger, fmt.Errorf("missing upload file: %w", types.ErrInvalidInput))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("media/%s/%s%s", identity.AccountID, utils.NanoID(), ext)

	ref, err := s.media.Upload(r.Context(), key, file, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(w, r, s.logger, fmt.Errorf("upload media: %w", err))
		return
	}

	if err := s.profiles.SetMediaRef(r.Context(), identity, ref); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{"ref": ref})
		return
	}

	http.Redirect(w, r, "/me", http.StatusSeeOther)
}
