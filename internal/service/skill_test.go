package service

import (
	"context"
	"testing"

	"communityconnect/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSkillAndAttach_CreatesOnFirstUse(t *testing.T) {
	skills := newMockSkillStore()
	svc := NewSkillService(skills, testLogger())

	skill, err := svc.CreateSkillAndAttach(context.Background(), volIdentity, "First Aid", "certified")
	require.NoError(t, err)

	assert.Equal(t, "First Aid", skill.Name)
	assert.Len(t, skills.skills, 1)
	assert.True(t, skills.attached["vol-1"][skill.ID])
}

func TestCreateSkillAndAttach_ReusesExistingName(t *testing.T) {
	skills := newMockSkillStore()
	svc := NewSkillService(skills, testLogger())

	first, err := svc.CreateSkillAndAttach(context.Background(), volIdentity, "First Aid", "")
	require.NoError(t, err)

	other := &types.Identity{AccountID: "vol-2", AccountType: types.AccountTypeVolunteer}
	second, err := svc.CreateSkillAndAttach(context.Background(), other, "First Aid", "different description")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, skills.skills, 1)
}

func TestCreateSkillAndAttach_EmptyName(t *testing.T) {
	svc := NewSkillService(newMockSkillStore(), testLogger())

	_, err := svc.CreateSkillAndAttach(context.Background(), volIdentity, "   ", "")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestAddExistingSkill_Idempotent(t *testing.T) {
	skills := newMockSkillStore()
	skills.skills = append(skills.skills, &types.Skill{ID: "skill-1", Name: "Cooking"})
	svc := NewSkillService(skills, testLogger())

	_, err := svc.AddExistingSkill(context.Background(), volIdentity, "skill-1")
	require.NoError(t, err)

	// Adding a skill the volunteer already holds is a no-op, not an error.
	_, err = svc.AddExistingSkill(context.Background(), volIdentity, "skill-1")
	require.NoError(t, err)

	held, err := svc.VolunteerSkills(context.Background(), volIdentity)
	require.NoError(t, err)
	assert.Len(t, held, 1)
}

func TestAddExistingSkill_UnknownSkill(t *testing.T) {
	svc := NewSkillService(newMockSkillStore(), testLogger())

	_, err := svc.AddExistingSkill(context.Background(), volIdentity, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRemoveSkill(t *testing.T) {
	skills := newMockSkillStore()
	skills.skills = append(skills.skills, &types.Skill{ID: "skill-1", Name: "Cooking"})
	svc := NewSkillService(skills, testLogger())

	_, err := svc.AddExistingSkill(context.Background(), volIdentity, "skill-1")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSkill(context.Background(), volIdentity, "skill-1"))

	held, err := svc.VolunteerSkills(context.Background(), volIdentity)
	require.NoError(t, err)
	assert.Empty(t, held)
}

func TestSkills_CountsVolunteers(t *testing.T) {
	skills := newMockSkillStore()
	svc := NewSkillService(skills, testLogger())

	_, err := svc.CreateSkillAndAttach(context.Background(), volIdentity, "First Aid", "")
	require.NoError(t, err)

	other := &types.Identity{AccountID: "vol-2", AccountType: types.AccountTypeVolunteer}
	_, err = svc.CreateSkillAndAttach(context.Background(), other, "First Aid", "")
	require.NoError(t, err)

	counts, err := svc.Skills(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, 2, counts[0].VolunteerCount)
}
