package seed

import (
	"context"
	"fmt"
	"testing"

	"communityconnect/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSkillStore struct {
	skills map[string]*types.Skill
}

func (f *fakeSkillStore) SkillByName(_ context.Context, name string) (*types.Skill, error) {
	if skill, ok := f.skills[name]; ok {
		return skill, nil
	}
	return nil, fmt.Errorf("skill %q: %w", name, types.ErrNotFound)
}

func (f *fakeSkillStore) Create(_ context.Context, skill *types.Skill) error {
	if _, ok := f.skills[skill.Name]; ok {
		return fmt.Errorf("skill %q: %w", skill.Name, types.ErrInvalidInput)
	}
	f.skills[skill.Name] = skill
	return nil
}

type fakeRoleStore struct {
	roles   map[string]*types.Role
	creates int
}

func (f *fakeRoleStore) RoleByName(_ context.Context, name string) (*types.Role, error) {
	if role, ok := f.roles[name]; ok {
		return role, nil
	}
	return nil, fmt.Errorf("role %q: %w", name, types.ErrNotFound)
}

func (f *fakeRoleStore) Create(_ context.Context, role *types.Role) error {
	f.creates++
	if _, ok := f.roles[role.Name]; ok {
		return fmt.Errorf("role %q: %w", role.Name, types.ErrInvalidInput)
	}
	f.roles[role.Name] = role
	return nil
}

func TestSeedSkillsIsIdempotent(t *testing.T) {
	store := &fakeSkillStore{skills: map[string]*types.Skill{}}

	require.NoError(t, SeedSkills(context.Background(), store))
	seeded := len(store.skills)
	assert.Equal(t, len(skills), seeded)

	require.NoError(t, SeedSkills(context.Background(), store))
	assert.Equal(t, seeded, len(store.skills))
}

func TestSeedRolesSkipsExistingNames(t *testing.T) {
	store := &fakeRoleStore{roles: map[string]*types.Role{
		"Driver": {ID: "role-1", Name: "Driver"},
	}}

	require.NoError(t, SeedRoles(context.Background(), store))

	assert.Len(t, store.roles, len(roles))
	assert.Equal(t, "role-1", store.roles["Driver"].ID, "existing role must not be replaced")
	assert.Equal(t, len(roles)-1, store.creates, "present names are skipped before insert")
}
