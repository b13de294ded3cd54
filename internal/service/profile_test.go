package service

import (
	"context"
	"testing"
	"time"

	"communityconnect/internal/utils"
	"communityconnect/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAge(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday already passed", time.Date(1990, time.March, 5, 0, 0, 0, 0, time.UTC), 36},
		{"birthday today", time.Date(1990, time.August, 31, 0, 0, 0, 0, time.UTC), 36},
		{"birthday upcoming", time.Date(1990, time.December, 25, 0, 0, 0, 0, time.UTC), 35},
		{"born this year", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
		{"future date of birth", time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Age(tc.dob, now))
		})
	}
}

func TestUpdateVolunteer(t *testing.T) {
	volunteers := &mockVolunteerStore{volunteers: []*types.Volunteer{{
		ID:        "vol-1",
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "ada@example.com",
	}}}
	svc := NewProfileService(volunteers, &mockOrganisationStore{}, testLogger())

	updated, err := svc.UpdateVolunteer(context.Background(), volIdentity, VolunteerProfileInput{
		FirstName:    "Ada",
		LastName:     "Eze",
		Phone:        utils.StringPtr("020 1234 5678"),
		Availability: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Eze", updated.LastName)
	assert.Equal(t, "ada@example.com", updated.Email)
	require.Len(t, volunteers.updated, 1)
}

func TestUpdateVolunteer_RequiresName(t *testing.T) {
	volunteers := &mockVolunteerStore{volunteers: []*types.Volunteer{{ID: "vol-1"}}}
	svc := NewProfileService(volunteers, &mockOrganisationStore{}, testLogger())

	_, err := svc.UpdateVolunteer(context.Background(), volIdentity, VolunteerProfileInput{FirstName: "Ada"})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestUpdateVolunteer_WrongAccountType(t *testing.T) {
	svc := NewProfileService(&mockVolunteerStore{}, &mockOrganisationStore{}, testLogger())

	_, err := svc.UpdateVolunteer(context.Background(), orgIdentity, VolunteerProfileInput{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, types.ErrForbiddenRole)
}

func TestChangePassword(t *testing.T) {
	volunteers := &mockVolunteerStore{volunteers: []*types.Volunteer{{
		ID:           "vol-1",
		PasswordHash: hashFor(t, "old password"),
	}}}
	svc := NewProfileService(volunteers, &mockOrganisationStore{}, testLogger())

	err := svc.ChangePassword(context.Background(), volIdentity, "wrong", "new password")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(context.Background(), volIdentity, "old password", "new password"))
	require.Len(t, volunteers.updated, 1)
}

func TestVolunteerDirectory_ComputesAgesAndWithholdsBirthDates(t *testing.T) {
	dob := time.Date(1990, time.March, 5, 0, 0, 0, 0, time.UTC)
	volunteers := &mockVolunteerStore{volunteers: []*types.Volunteer{
		{ID: "vol-1", FirstName: "Ada", LastName: "Okafor", DateOfBirth: &dob},
		{ID: "vol-2", FirstName: "Ben", LastName: "Singh"},
	}}
	svc := NewProfileService(volunteers, &mockOrganisationStore{}, testLogger())

	listings, err := svc.VolunteerDirectory(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)

	byID := map[string]*types.VolunteerListing{}
	for _, listing := range listings {
		byID[listing.ID] = listing
		assert.Nil(t, listing.DateOfBirth)
	}

	require.NotNil(t, byID["vol-1"].Age)
	assert.Equal(t, Age(dob, time.Now()), *byID["vol-1"].Age)
	assert.Nil(t, byID["vol-2"].Age)

	// The stored record keeps its birth date; only the listing copy drops it.
	assert.NotNil(t, volunteers.volunteers[0].DateOfBirth)
}

func TestOrganisationDirectory(t *testing.T) {
	organisations := &mockOrganisationStore{organisations: []*types.Organisation{
		{ID: "org-1", Name: "Helping Hands"},
		{ID: "org-2", Name: "Food Share"},
	}}
	svc := NewProfileService(&mockVolunteerStore{}, organisations, testLogger())

	listed, err := svc.OrganisationDirectory(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestSetMediaRef(t *testing.T) {
	organisations := &mockOrganisationStore{organisations: []*types.Organisation{{ID: "org-1", Name: "Helping Hands"}}}
	svc := NewProfileService(&mockVolunteerStore{}, organisations, testLogger())

	require.NoError(t, svc.SetMediaRef(context.Background(), orgIdentity, "logos/org-1/abc.png"))
	require.Len(t, organisations.updated, 1)
	assert.Equal(t, "logos/org-1/abc.png", *organisations.updated[0].LogoRef)
}
