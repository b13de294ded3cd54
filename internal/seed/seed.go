package seed

import (
	"context"
	"errors"

	"communityconnect/internal/utils"
	"communityconnect/pkg/types"
)

type SkillStore interface {
	SkillByName(ctx context.Context, name string) (*types.Skill, error)
	Create(ctx context.Context, skill *types.Skill) error
}

type RoleStore interface {
	RoleByName(ctx context.Context, name string) (*types.Role, error)
	Create(ctx context.Context, role *types.Role) error
}

var skills = []types.Skill{
	{Name: "First Aid", Description: utils.StringPtr("Holds a current first aid certificate")},
	{Name: "Cooking", Description: utils.StringPtr("Food preparation for groups")},
	{Name: "Driving", Description: utils.StringPtr("Full driving licence, comfortable with vans")},
	{Name: "Gardening", Description: utils.StringPtr("Planting, weeding and general grounds work")},
	{Name: "Translation", Description: utils.StringPtr("Interpreting or translating for attendees")},
	{Name: "IT Support", Description: utils.StringPtr("Helping attendees with phones and computers")},
}

var roles = []types.Role{
	{Name: "Team Lead", Description: utils.StringPtr("Coordinates volunteers on the day")},
	{Name: "General Helper", Description: utils.StringPtr("Hands-on help wherever needed")},
	{Name: "Driver", Description: utils.StringPtr("Transports people or supplies")},
	{Name: "First Aider", Description: utils.StringPtr("On-site first aid cover")},
	{Name: "Registration Desk", Description: utils.StringPtr("Checks attendees in")},
}

// SeedSkills inserts the baseline skill set. Names already present are
// left alone; the lookup is a pre-check and the unique constraint still
// backstops a concurrent insert.
func SeedSkills(ctx context.Context, repo SkillStore) error {
	for _, skill := range skills {
		if _, err := repo.SkillByName(ctx, skill.Name); err == nil {
			continue
		} else if !errors.Is(err, types.ErrNotFound) {
			return err
		}

		s := skill
		if err := repo.Create(ctx, &s); err != nil && !errors.Is(err, types.ErrInvalidInput) {
			return err
		}
	}
	return nil
}

// SeedRoles inserts the baseline role set, skipping names already present.
func SeedRoles(ctx context.Context, repo RoleStore) error {
	for _, role := range roles {
		if _, err := repo.RoleByName(ctx, role.Name); err == nil {
			continue
		} else if !errors.Is(err, types.ErrNotFound) {
			return err
		}

		r := role
		if err := repo.Create(ctx, &r); err != nil && !errors.Is(err, types.ErrInvalidInput) {
			return err
		}
	}
	return nil
}
