package service

import (
	"context"
	"fmt"
	"time"

	"communityconnect/pkg/types"

	"github.com/sirupsen/logrus"
)

type EventService struct {
	events EventStore
	skills SkillStore
	logger *logrus.Logger
}

func NewEventService(events EventStore, skills SkillStore, logger *logrus.Logger) *EventService {
	return &EventService{
		events: events,
		skills: skills,
		logger: logger,
	}
}

type EventInput struct {
	Name        string
	Description *string
	Date        time.Time
	StartTime   *string
	EndTime     *string
	Location    *string
	Status      string
	SkillIDs    []string
}

func (s *EventService) Event(ctx context.Context, eventID string) (*types.Event, error) {
	return s.events.Event(ctx, eventID)
}

func (s *EventService) Events(ctx context.Context) ([]*types.EventListing, error) {
	return s.events.Events(ctx)
}

func (s *EventService) EventsByOrganisation(ctx context.Context, organisationID string) ([]*types.Event, error) {
	return s.events.EventsByOrganisation(ctx, organisationID)
}

func (s *EventService) EventSkills(ctx context.Context, eventID string) (*types.Event, []*types.Skill, error) {
	event, err := s.events.Event(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	skills, err := s.skills.SkillsForEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	return event, skills, nil
}

// Counts returns informational aggregates for an event. They are never
// used to cap acceptances.
func (s *EventService) Counts(ctx context.Context, eventID string) (*types.EventCounts, error) {
	return s.events.Counts(ctx, eventID)
}

// CreateEvent creates an event owned by the calling organisation. The
// owner is fixed from the identity and never changes afterwards.
func (s *EventService) CreateEvent(ctx context.Context, identity *types.Identity, input EventInput) (*types.Event, error) {
	if err := requireOrganisation(identity); err != nil {
		return nil, err
	}

	if input.Name == "" || input.Date.IsZero() {
		return nil, fmt.Errorf("event name and date are required: %w", types.ErrInvalidInput)
	}

	status := input.Status
	if status == "" {
		status = types.EventStatusOpen
	}

	event := &types.Event{
		OrganisationID: identity.AccountID,
		Name:           input.Name,
		Description:    input.Description,
		Date:           input.Date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Location:       input.Location,
		Status:         status,
	}

	if err := s.events.Create(ctx, event, input.SkillIDs); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"event_id":        event.ID,
		"organisation_id": identity.AccountID,
	}).Info("event created")

	return event, nil
}

// UpdateEvent rewrites the event's attributes and replaces its skill
// requirement set wholesale. Only the owning organisation may call it.
func (s *EventService) UpdateEvent(ctx context.Context, identity *types.Identity, eventID string, input EventInput) (*types.Event, error) {
	event, err := s.requireOwnedEvent(ctx, identity, eventID)
	if err != nil {
		return nil, err
	}

	if input.Name == "" || input.Date.IsZero() {
		return nil, fmt.Errorf("event name and date are required: %w", types.ErrInvalidInput)
	}

	event.Name = input.Name
	event.Description = input.Description
	event.Date = input.Date
	event.StartTime = input.StartTime
	event.EndTime = input.EndTime
	event.Location = input.Location
	if input.Status != "" {
		event.Status = input.Status
	}

	if err := s.events.Update(ctx, eventID, event, input.SkillIDs); err != nil {
		return nil, err
	}

	return event, nil
}

// DeleteEvent removes an owned event together with its signups and skill
// requirements.
func (s *EventService) DeleteEvent(ctx context.Context, identity *types.Identity, eventID string) error {
	if _, err := s.requireOwnedEvent(ctx, identity, eventID); err != nil {
		return err
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"event_id":        eventID,
		"organisation_id": identity.AccountID,
	}).Info("event deleted")

	return nil
}

func (s *EventService) requireOwnedEvent(ctx context.Context, identity *types.Identity, eventID string) (*types.Event, error) {
	if err := requireOrganisation(identity); err != nil {
		return nil, err
	}

	event, err := s.events.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.OrganisationID != identity.AccountID {
		return nil, fmt.Errorf("event %s: %w", eventID, types.ErrForbiddenOwnership)
	}

	return event, nil
}

// Guard helpers shared by the services. They compose by short-circuit:
// the first failing check decides the error.

func requireAuthenticated(identity *types.Identity) error {
	if identity == nil || identity.AccountID == "" {
		return types.ErrUnauthenticated
	}
	return nil
}

func requireOrganisation(identity *types.Identity) error {
	if err := requireAuthenticated(identity); err != nil {
		return err
	}
	if identity.AccountType != types.AccountTypeOrganisation {
		return types.ErrForbiddenRole
	}
	return nil
}

func requireVolunteer(identity *types.Identity) error {
	if err := requireAuthenticated(identity); err != nil {
		return err
	}
	if identity.AccountType != types.AccountTypeVolunteer {
		return types.ErrForbiddenRole
	}
	return nil
}
