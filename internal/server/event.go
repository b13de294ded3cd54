package server

import (
	"fmt"
	"net/http"
	"time"

	"communityconnect/internal/service"
	"communityconnect/internal/utils"
	"communityconnect/pkg/types"

	"github.com/alexedwards/flow"
)

type eventForm struct {
	Name        string   `form:"name" validate:"required"`
	Description string   `form:"description"`
	Date        string   `form:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string   `form:"start_time"`
	EndTime     string   `form:"end_time"`
	Location    string   `form:"location"`
	Status      string   `form:"status"`
	SkillIDs    []string `form:"skill_ids"`
}

func (f eventForm) toInput() (service.EventInput, error) {
	date, err := time.Parse("2006-01-02", f.Date)
	if err != nil {
		return service.EventInput{}, fmt.Errorf("event date: %w", types.ErrInvalidInput)
	}

	return service.EventInput{
		Name:        f.Name,
		Description: utils.NilIfEmpty(f.Description),
		Date:        date,
		StartTime:   utils.NilIfEmpty(f.StartTime),
		EndTime:     utils.NilIfEmpty(f.EndTime),
		Location:    utils.NilIfEmpty(f.Location),
		Status:      f.Status,
		SkillIDs:    f.SkillIDs,
	}, nil
}

func (s *Service) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.Events(r.Context())
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Service) handleMyEvents(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	events, err := s.events.EventsByOrganisation(r.Context(), identity.AccountID)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Service) handleEventDetail(w http.ResponseWriter, r *http.Request) {
	eventID := flow.Param(r.Context(), "id")

	event, skills, err := s.events.EventSkills(r.Context(), eventID)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	counts, err := s.events.Counts(r.Context(), eventID)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"event":  event,
		"skills": skills,
		"counts": counts,
	})
}

// handleEventSkillsJSON keeps the legacy shape: the event's name and its
// required skill names only.
func (s *Service) handleEventSkillsJSON(w http.ResponseWriter, r *http.Request) {
	eventID := flow.Param(r.Context(), "id")

	event, skills, err := s.events.EventSkills(r.Context(), eventID)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		names = append(names, skill.Name)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"event_name": event.Name,
		"skills":     names,
	})
}

func (s *Service) handleEventDetailJSON(w http.ResponseWriter, r *http.Request) {
	event, err := s.events.Event(r.Context(), flow.Param(r.Context(), "id"))
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

func (s *Service) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	var form eventForm
	if err := decodeForm(r, &form); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	input, err := form.toInput()
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	event, err := s.events.CreateEvent(r.Context(), identity, input)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusCreated, event)
		return
	}

	http.Redirect(w, r, "/events/"+event.ID, http.StatusSeeOther)
}

func (s *Service) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	eventID := flow.Param(r.Context(), "id")

	var form eventForm
	if err := decodeForm(r, &form); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	input, err := form.toInput()
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	event, err := s.events.UpdateEvent(r.Context(), identity, eventID, input)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, event)
		return
	}

	http.Redirect(w, r, "/events/"+event.ID, http.StatusSeeOther)
}

func (s *Service) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	if err := s.events.DeleteEvent(r.Context(), identity, flow.Param(r.Context(), "id")); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		return
	}

	http.Redirect(w, r, "/events", http.StatusSeeOther)
}
