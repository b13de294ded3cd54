package server

import (
	"fmt"
	"net/http"
	"time"

	"communityconnect/internal/service"
	"communityconnect/internal/utils"
	"communityconnect/pkg/types"
)

type registerVolunteerForm struct {
	FirstName        string `form:"first_name" validate:"required"`
	LastName         string `form:"last_name" validate:"required"`
	Email            string `form:"email" validate:"required,email"`
	Password         string `form:"password" validate:"required,min=8"`
	Phone            string `form:"phone"`
	Address          string `form:"address"`
	DateOfBirth      string `form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Availability     bool   `form:"availability"`
	EmergencyContact string `form:"emergency_contact"`
}

type registerOrganisationForm struct {
	Name          string `form:"name" validate:"required"`
	Email         string `form:"email" validate:"required,email"`
	Password      string `form:"password" validate:"required,min=8"`
	ContactPerson string `form:"contact_person"`
	Phone         string `form:"phone"`
	Address       string `form:"address"`
	Website       string `form:"website" validate:"omitempty,url"`
	Description   string `form:"description"`
}

type loginForm struct {
	Email       string `form:"email" validate:"required,email"`
	Password    string `form:"password" validate:"required"`
	AccountType string `form:"account_type" validate:"required,oneof=volunteer organisation"`
}

func (s *Service) handleRegisterVolunteer(w http.ResponseWriter, r *http.Request) {
	var form registerVolunteerForm
	if err := decodeForm(r, &form); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	input := service.RegisterVolunteerInput{
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		Email:            form.Email,
		Password:         form.Password,
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

	volunteer, err := s.auth.RegisterVolunteer(r.Context(), input)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusCreated, volunteer)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Service) handleRegisterOrganisation(w http.ResponseWriter, r *http.Request) {
	var form registerOrganisationForm
	if err := decodeForm(r, &form); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	organisation, err := s.auth.RegisterOrganisation(r.Context(), service.RegisterOrganisationInput{
		Name:          form.Name,
		Email:         form.Email,
		Password:      form.Password,
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
		respondJSON(w, http.StatusCreated, organisation)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := decodeForm(r, &form); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	identity, err := s.auth.Authenticate(r.Context(), form.Email, form.Password, types.AccountType(form.AccountType))
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if err := s.setSessionCookie(w, identity); err != nil {
		s.logger.WithError(err).Error("failed to set session cookie")
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, identity)
		return
	}

	// Resume an interrupted navigation if the login came from an
	// unauthenticated redirect.
	if redirectCookie, err := r.Cookie(redirectCookieName); err == nil {
		path := redirectCookie.Value
		s.clearRedirectCookie(w)
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
		return
	}

	http.Redirect(w, r, "/events", http.StatusSeeOther)
}
