package service

import (
	"context"
	"fmt"

	"communityconnect/pkg/types"
)

// In-memory store doubles shared by the service tests.

type mockVolunteerStore struct {
	volunteers []*types.Volunteer
	updated    []*types.Volunteer
}

func (m *mockVolunteerStore) Volunteer(_ context.Context, id string) (*types.Volunteer, error) {
	for _, v := range m.volunteers {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("volunteer %s: %w", id, types.ErrNotFound)
}

func (m *mockVolunteerStore) VolunteerByEmail(_ context.Context, email string) (*types.Volunteer, error) {
	for _, v := range m.volunteers {
		if v.Email == email {
			return v, nil
		}
	}
	return nil, fmt.Errorf("volunteer %s: %w", email, types.ErrNotFound)
}

func (m *mockVolunteerStore) Volunteers(_ context.Context) ([]*types.Volunteer, error) {
	return m.volunteers, nil
}

func (m *mockVolunteerStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, v := range m.volunteers {
		if v.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockVolunteerStore) Create(_ context.Context, volunteer *types.Volunteer) error {
	for _, v := range m.volunteers {
		if v.Email == volunteer.Email {
			return fmt.Errorf("volunteer %s: %w", volunteer.Email, types.ErrDuplicateEmail)
		}
	}
	volunteer.ID = fmt.Sprintf("vol-%d", len(m.volunteers)+1)
	m.volunteers = append(m.volunteers, volunteer)
	return nil
}

func (m *mockVolunteerStore) Update(_ context.Context, id string, volunteer *types.Volunteer) error {
	volunteer.ID = id
	m.updated = append(m.updated, volunteer)
	return nil
}

type mockOrganisationStore struct {
	organisations []*types.Organisation
	updated       []*types.Organisation
}

func (m *mockOrganisationStore) Organisation(_ context.Context, id string) (*types.Organisation, error) {
	for _, o := range m.organisations {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, fmt.Errorf("organisation %s: %w", id, types.ErrNotFound)
}

func (m *mockOrganisationStore) OrganisationByEmail(_ context.Context, email string) (*types.Organisation, error) {
	for _, o := range m.organisations {
		if o.Email == email {
			return o, nil
		}
	}
	return nil, fmt.Errorf("organisation %s: %w", email, types.ErrNotFound)
}

func (m *mockOrganisationStore) Organisations(_ context.Context) ([]*types.Organisation, error) {
	return m.organisations, nil
}

func (m *mockOrganisationStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, o := range m.organisations {
		if o.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockOrganisationStore) Create(_ context.Context, organisation *types.Organisation) error {
	for _, o := range m.organisations {
		if o.Email == organisation.Email {
			return fmt.Errorf("organisation %s: %w", organisation.Email, types.ErrDuplicateEmail)
		}
	}
	organisation.ID = fmt.Sprintf("org-%d", len(m.organisations)+1)
	m.organisations = append(m.organisations, organisation)
	return nil
}

func (m *mockOrganisationStore) Update(_ context.Context, id string, organisation *types.Organisation) error {
	organisation.ID = id
	m.updated = append(m.updated, organisation)
	return nil
}

type mockEventStore struct {
	events    []*types.Event
	skillSets map[string][]string
	deleted   []string
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{skillSets: map[string][]string{}}
}

func (m *mockEventStore) Event(_ context.Context, id string) (*types.Event, error) {
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("event %s: %w", id, types.ErrNotFound)
}

func (m *mockEventStore) Events(_ context.Context) ([]*types.EventListing, error) {
	listings := make([]*types.EventListing, 0, len(m.events))
	for _, e := range m.events {
		listings = append(listings, &types.EventListing{Event: *e})
	}
	return listings, nil
}

func (m *mockEventStore) EventsByOrganisation(_ context.Context, organisationID string) ([]*types.Event, error) {
	var events []*types.Event
	for _, e := range m.events {
		if e.OrganisationID == organisationID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *mockEventStore) Create(_ context.Context, event *types.Event, skillIDs []string) error {
	event.ID = fmt.Sprintf("evt-%d", len(m.events)+1)
	m.events = append(m.events, event)
	m.skillSets[event.ID] = skillIDs
	return nil
}

func (m *mockEventStore) Update(_ context.Context, id string, event *types.Event, skillIDs []string) error {
	for i, e := range m.events {
		if e.ID == id {
			event.ID = id
			m.events[i] = event
			m.skillSets[id] = skillIDs
			return nil
		}
	}
	return fmt.Errorf("event %s: %w", id, types.ErrNotFound)
}

func (m *mockEventStore) Delete(_ context.Context, id string) error {
	for i, e := range m.events {
		if e.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			delete(m.skillSets, id)
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return nil
}

func (m *mockEventStore) Counts(_ context.Context, id string) (*types.EventCounts, error) {
	return &types.EventCounts{RequiredSkills: len(m.skillSets[id])}, nil
}

type mockSkillStore struct {
	skills   []*types.Skill
	attached map[string]map[string]bool
}

func newMockSkillStore() *mockSkillStore {
	return &mockSkillStore{attached: map[string]map[string]bool{}}
}

func (m *mockSkillStore) Skill(_ context.Context, id string) (*types.Skill, error) {
	for _, sk := range m.skills {
		if sk.ID == id {
			return sk, nil
		}
	}
	return nil, fmt.Errorf("skill %s: %w", id, types.ErrNotFound)
}

func (m *mockSkillStore) SkillByName(_ context.Context, name string) (*types.Skill, error) {
	for _, sk := range m.skills {
		if sk.Name == name {
			return sk, nil
		}
	}
	return nil, fmt.Errorf("skill %q: %w", name, types.ErrNotFound)
}

func (m *mockSkillStore) Create(_ context.Context, skill *types.Skill) error {
	for _, sk := range m.skills {
		if sk.Name == skill.Name {
			return fmt.Errorf("skill %q: %w", skill.Name, types.ErrInvalidInput)
		}
	}
	skill.ID = fmt.Sprintf("skill-%d", len(m.skills)+1)
	m.skills = append(m.skills, skill)
	return nil
}

func (m *mockSkillStore) SkillsWithCounts(_ context.Context) ([]*types.SkillCount, error) {
	counts := make([]*types.SkillCount, 0, len(m.skills))
	for _, sk := range m.skills {
		count := &types.SkillCount{Skill: *sk}
		for _, held := range m.attached {
			if held[sk.ID] {
				count.VolunteerCount++
			}
		}
		counts = append(counts, count)
	}
	return counts, nil
}

func (m *mockSkillStore) SkillsForVolunteer(_ context.Context, volunteerID string) ([]*types.Skill, error) {
	var skills []*types.Skill
	for _, sk := range m.skills {
		if m.attached[volunteerID][sk.ID] {
			skills = append(skills, sk)
		}
	}
	return skills, nil
}

func (m *mockSkillStore) SkillsForEvent(_ context.Context, eventID string) ([]*types.Skill, error) {
	return nil, nil
}

func (m *mockSkillStore) AttachToVolunteer(_ context.Context, volunteerID, skillID string) error {
	if m.attached[volunteerID] == nil {
		m.attached[volunteerID] = map[string]bool{}
	}
	m.attached[volunteerID][skillID] = true
	return nil
}

func (m *mockSkillStore) DetachFromVolunteer(_ context.Context, volunteerID, skillID string) error {
	delete(m.attached[volunteerID], skillID)
	return nil
}

type mockRoleStore struct {
	roles []*types.Role
}

func (m *mockRoleStore) Role(_ context.Context, id string) (*types.Role, error) {
	for _, ro := range m.roles {
		if ro.ID == id {
			return ro, nil
		}
	}
	return nil, fmt.Errorf("role %s: %w", id, types.ErrNotFound)
}

func (m *mockRoleStore) Roles(_ context.Context) ([]*types.Role, error) {
	return m.roles, nil
}

type mockSignupStore struct {
	signups      []*types.Signup
	eventSignups []*types.EventSignup
}

func (m *mockSignupStore) Signup(_ context.Context, id string) (*types.Signup, error) {
	for _, s := range m.signups {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("signup %s: %w", id, types.ErrNotFound)
}

func (m *mockSignupStore) Create(_ context.Context, signup *types.Signup) error {
	for _, s := range m.signups {
		if s.VolunteerID == signup.VolunteerID && s.EventID == signup.EventID {
			return fmt.Errorf("volunteer %s event %s: %w", signup.VolunteerID, signup.EventID, types.ErrDuplicateSignup)
		}
	}
	signup.ID = fmt.Sprintf("sgn-%d", len(m.signups)+1)
	m.signups = append(m.signups, signup)
	return nil
}

func (m *mockSignupStore) UpdateStatusRole(_ context.Context, id string, status types.SignupStatus, roleID *string) error {
	for _, s := range m.signups {
		if s.ID == id {
			s.Status = status
			s.RoleID = roleID
			return nil
		}
	}
	return fmt.Errorf("signup %s: %w", id, types.ErrNotFound)
}

func (m *mockSignupStore) Delete(_ context.Context, id string) error {
	for i, s := range m.signups {
		if s.ID == id {
			m.signups = append(m.signups[:i], m.signups[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockSignupStore) SignupsForEvent(_ context.Context, eventID string) ([]*types.EventSignup, error) {
	var signups []*types.EventSignup
	for _, s := range m.eventSignups {
		if s.EventID == eventID {
			signups = append(signups, s)
		}
	}
	return signups, nil
}

func (m *mockSignupStore) SignupsForVolunteer(_ context.Context, volunteerID string) ([]*types.VolunteerSignup, error) {
	var signups []*types.VolunteerSignup
	for _, s := range m.signups {
		if s.VolunteerID == volunteerID {
			signups = append(signups, &types.VolunteerSignup{Signup: *s})
		}
	}
	return signups, nil
}
