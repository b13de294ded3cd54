package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"communityconnect/pkg/types"

	"github.com/sirupsen/logrus"
)

type SignupService struct {
	signups SignupStore
	events  EventStore
	roles   RoleStore
	logger  *logrus.Logger
}

func NewSignupService(signups SignupStore, events EventStore, roles RoleStore, logger *logrus.Logger) *SignupService {
	return &SignupService{
		signups: signups,
		events:  events,
		roles:   roles,
		logger:  logger,
	}
}

// SignupResult reports a self-enrollment. AlreadySignedUp marks the
// informational duplicate outcome: the volunteer had already signed up
// and nothing changed.
type SignupResult struct {
	Signup          *types.Signup
	AlreadySignedUp bool
}

// Create self-enrolls the calling volunteer for an event. Signing up
// twice for the same event is not an error.
func (s *SignupService) Create(ctx context.Context, identity *types.Identity, eventID string) (*SignupResult, error) {
	if err := requireVolunteer(identity); err != nil {
		return nil, err
	}

	if _, err := s.events.Event(ctx, eventID); err != nil {
		return nil, err
	}

	signup := &types.Signup{
		VolunteerID: identity.AccountID,
		EventID:     eventID,
		Status:      types.SignupStatusPending,
	}

	err := s.signups.Create(ctx, signup)
	if err != nil {
		if errors.Is(err, types.ErrDuplicateSignup) {
			return &SignupResult{AlreadySignedUp: true}, nil
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"signup_id":    signup.ID,
		"volunteer_id": identity.AccountID,
		"event_id":     eventID,
	}).Info("volunteer signed up")

	return &SignupResult{Signup: signup}, nil
}

// SetStatus moves a signup to one of Pending, Accepted or Rejected and
// optionally assigns or clears a role. Only the organisation owning the
// signup's event may call it. There is no capacity check: accepting more
// volunteers than an event needs is allowed.
func (s *SignupService) SetStatus(ctx context.Context, identity *types.Identity, signupID string, status types.SignupStatus, roleID *string) (*types.Signup, error) {
	if err := requireOrganisation(identity); err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, fmt.Errorf("signup status %q: %w", status, types.ErrInvalidInput)
	}

	signup, err := s.signups.Signup(ctx, signupID)
	if err != nil {
		return nil, err
	}

	event, err := s.events.Event(ctx, signup.EventID)
	if err != nil {
		return nil, err
	}

	if event.OrganisationID != identity.AccountID {
		return nil, fmt.Errorf("signup %s: %w", signupID, types.ErrForbiddenOwnership)
	}

	if roleID != nil {
		if _, err := s.roles.Role(ctx, *roleID); err != nil {
			return nil, err
		}
	}

	if err := s.signups.UpdateStatusRole(ctx, signupID, status, roleID); err != nil {
		return nil, err
	}

	signup.Status = status
	signup.RoleID = roleID
	return signup, nil
}

// Retract deletes the calling volunteer's own signup. Accepted signups
// cannot be retracted.
func (s *SignupService) Retract(ctx context.Context, identity *types.Identity, signupID string) error {
	if err := requireVolunteer(identity); err != nil {
		return err
	}

	signup, err := s.signups.Signup(ctx, signupID)
	if err != nil {
		return err
	}

	if signup.VolunteerID != identity.AccountID {
		return fmt.Errorf("signup %s: %w", signupID, types.ErrForbiddenOwnership)
	}

	if signup.Status == types.SignupStatusAccepted {
		return fmt.Errorf("signup %s: %w", signupID, types.ErrRetractionNotAllowed)
	}

	if err := s.signups.Delete(ctx, signupID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"signup_id":    signupID,
		"volunteer_id": identity.AccountID,
	}).Info("signup retracted")

	return nil
}

// SignupsForEvent lists an owned event's signups with each volunteer's
// name and age.
func (s *SignupService) SignupsForEvent(ctx context.Context, identity *types.Identity, eventID string) ([]*types.EventSignup, error) {
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

	signups, err := s.signups.SignupsForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, signup := range signups {
		if signup.DateOfBirth != nil {
			signup.Age = Age(*signup.DateOfBirth, now)
		}
	}

	return signups, nil
}

func (s *SignupService) SignupsForVolunteer(ctx context.Context, identity *types.Identity) ([]*types.VolunteerSignup, error) {
	if err := requireVolunteer(identity); err != nil {
		return nil, err
	}

	return s.signups.SignupsForVolunteer(ctx, identity.AccountID)
}
