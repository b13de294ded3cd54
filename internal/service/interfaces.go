package service

import (
	"context"

	"communityconnect/pkg/types"
)

// Store interfaces consumed by the services. The concrete implementations
// live in internal/store; tests substitute in-memory doubles.

type VolunteerStore interface {
	Volunteer(ctx context.Context, volunteerID string) (*types.Volunteer, error)
	VolunteerByEmail(ctx context.Context, email string) (*types.Volunteer, error)
	Volunteers(ctx context.Context) ([]*types.Volunteer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, volunteer *types.Volunteer) error
	Update(ctx context.Context, volunteerID string, volunteer *types.Volunteer) error
}

type OrganisationStore interface {
	Organisation(ctx context.Context, organisationID string) (*types.Organisation, error)
	OrganisationByEmail(ctx context.Context, email string) (*types.Organisation, error)
	Organisations(ctx context.Context) ([]*types.Organisation, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, organisation *types.Organisation) error
	Update(ctx context.Context, organisationID string, organisation *types.Organisation) error
}

type EventStore interface {
	Event(ctx context.Context, eventID string) (*types.Event, error)
	Events(ctx context.Context) ([]*types.EventListing, error)
	EventsByOrganisation(ctx context.Context, organisationID string) ([]*types.Event, error)
	Create(ctx context.Context, event *types.Event, skillIDs []string) error
	Update(ctx context.Context, eventID string, event *types.Event, skillIDs []string) error
	Delete(ctx context.Context, eventID string) error
	Counts(ctx context.Context, eventID string) (*types.EventCounts, error)
}

type SkillStore interface {
	Skill(ctx context.Context, skillID string) (*types.Skill, error)
	SkillByName(ctx context.Context, name string) (*types.Skill, error)
	Create(ctx context.Context, skill *types.Skill) error
	SkillsWithCounts(ctx context.Context) ([]*types.SkillCount, error)
	SkillsForVolunteer(ctx context.Context, volunteerID string) ([]*types.Skill, error)
	SkillsForEvent(ctx context.Context, eventID string) ([]*types.Skill, error)
	AttachToVolunteer(ctx context.Context, volunteerID, skillID string) error
	DetachFromVolunteer(ctx context.Context, volunteerID, skillID string) error
}

type RoleStore interface {
	Role(ctx context.Context, roleID string) (*types.Role, error)
	Roles(ctx context.Context) ([]*types.Role, error)
}

type SignupStore interface {
	Signup(ctx context.Context, signupID string) (*types.Signup, error)
	Create(ctx context.Context, signup *types.Signup) error
	UpdateStatusRole(ctx context.Context, signupID string, status types.SignupStatus, roleID *string) error
	Delete(ctx context.Context, signupID string) error
	SignupsForEvent(ctx context.Context, eventID string) ([]*types.EventSignup, error)
	SignupsForVolunteer(ctx context.Context, volunteerID string) ([]*types.VolunteerSignup, error)
}
