package service

import (
	"context"
	"testing"
	"time"

	"communityconnect/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orgIdentity      = &types.Identity{AccountID: "org-1", AccountType: types.AccountTypeOrganisation, DisplayName: "Helping Hands"}
	otherOrgIdentity = &types.Identity{AccountID: "org-2", AccountType: types.AccountTypeOrganisation, DisplayName: "Food Bank"}
	volIdentity      = &types.Identity{AccountID: "vol-1", AccountType: types.AccountTypeVolunteer, DisplayName: "Ada Okafor"}
)

func eventInput(name string) EventInput {
	return EventInput{
		Name: name,
		Date: time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateEvent_OwnerFixedFromIdentity(t *testing.T) {
	events := newMockEventStore()
	svc := NewEventService(events, newMockSkillStore(), testLogger())

	event, err := svc.CreateEvent(context.Background(), orgIdentity, eventInput("Beach Cleanup"))
	require.NoError(t, err)

	assert.Equal(t, "org-1", event.OrganisationID)
	assert.Equal(t, types.EventStatusOpen, event.Status)
}

func TestCreateEvent_Guards(t *testing.T) {
	svc := NewEventService(newMockEventStore(), newMockSkillStore(), testLogger())

	_, err := svc.CreateEvent(context.Background(), nil, eventInput("Beach Cleanup"))
	assert.ErrorIs(t, err, types.ErrUnauthenticated)

	_, err = svc.CreateEvent(context.Background(), volIdentity, eventInput("Beach Cleanup"))
	assert.ErrorIs(t, err, types.ErrForbiddenRole)
}

func TestCreateEvent_RequiresNameAndDate(t *testing.T) {
	svc := NewEventService(newMockEventStore(), newMockSkillStore(), testLogger())

	_, err := svc.CreateEvent(context.Background(), orgIdentity, EventInput{Name: "No Date"})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestUpdateEvent_OnlyOwner(t *testing.T) {
	events := newMockEventStore()
	svc := NewEventService(events, newMockSkillStore(), testLogger())

	created, err := svc.CreateEvent(context.Background(), orgIdentity, eventInput("Beach Cleanup"))
	require.NoError(t, err)

	_, err = svc.UpdateEvent(context.Background(), otherOrgIdentity, created.ID, eventInput("Hijacked"))
	assert.ErrorIs(t, err, types.ErrForbiddenOwnership)

	updated, err := svc.UpdateEvent(context.Background(), orgIdentity, created.ID, eventInput("Beach Cleanup II"))
	require.NoError(t, err)
	assert.Equal(t, "Beach Cleanup II", updated.Name)
	assert.Equal(t, "org-1", updated.OrganisationID)
}

func TestUpdateEvent_ReplacesSkillSet(t *testing.T) {
	events := newMockEventStore()
	svc := NewEventService(events, newMockSkillStore(), testLogger())

	input := eventInput("Beach Cleanup")
	input.SkillIDs = []string{"skill-1", "skill-2"}

	created, err := svc.CreateEvent(context.Background(), orgIdentity, input)
	require.NoError(t, err)
	assert.Equal(t, []string{"skill-1", "skill-2"}, events.skillSets[created.ID])

	// An edit replaces the whole requirement set, it never merges.
	input.SkillIDs = []string{"skill-3"}
	_, err = svc.UpdateEvent(context.Background(), orgIdentity, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, []string{"skill-3"}, events.skillSets[created.ID])
}

func TestDeleteEvent_OnlyOwner(t *testing.T) {
	events := newMockEventStore()
	svc := NewEventService(events, newMockSkillStore(), testLogger())

	created, err := svc.CreateEvent(context.Background(), orgIdentity, eventInput("Beach Cleanup"))
	require.NoError(t, err)

	err = svc.DeleteEvent(context.Background(), otherOrgIdentity, created.ID)
	assert.ErrorIs(t, err, types.ErrForbiddenOwnership)

	require.NoError(t, svc.DeleteEvent(context.Background(), orgIdentity, created.ID))

	_, err = svc.Event(context.Background(), created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteEvent_UnknownEvent(t *testing.T) {
	svc := NewEventService(newMockEventStore(), newMockSkillStore(), testLogger())

	err := svc.DeleteEvent(context.Background(), orgIdentity, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
