package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"communityconnect/pkg/types"

	"github.com/sirupsen/logrus"
)

type SkillService struct {
	skills SkillStore
	logger *logrus.Logger
}

func NewSkillService(skills SkillStore, logger *logrus.Logger) *SkillService {
	return &SkillService{
		skills: skills,
		logger: logger,
	}
}

func (s *SkillService) Skills(ctx context.Context) ([]*types.SkillCount, error) {
	return s.skills.SkillsWithCounts(ctx)
}

func (s *SkillService) VolunteerSkills(ctx context.Context, identity *types.Identity) ([]*types.Skill, error) {
	if err := requireVolunteer(identity); err != nil {
		return nil, err
	}

	return s.skills.SkillsForVolunteer(ctx, identity.AccountID)
}

// AddExistingSkill attaches a known skill to the calling volunteer.
// Attaching a skill the volunteer already holds is a no-op.
func (s *SkillService) AddExistingSkill(ctx context.Context, identity *types.Identity, skillID string) (*types.Skill, error) {
	if err := requireVolunteer(identity); err != nil {
		return nil, err
	}

	skill, err := s.skills.Skill(ctx, skillID)
	if err != nil {
		return nil, err
	}

	if err := s.skills.AttachToVolunteer(ctx, identity.AccountID, skill.ID); err != nil {
		return nil, err
	}

	return skill, nil
}

// CreateSkillAndAttach attaches a skill by name, creating it on first
// use. An existing skill with the same name is reused, never duplicated;
// a concurrent create losing the unique-constraint race falls back to the
// winner's row.
func (s *SkillService) CreateSkillAndAttach(ctx context.Context, identity *types.Identity, name, description string) (*types.Skill, error) {
	if err := requireVolunteer(identity); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("skill name is required: %w", types.ErrInvalidInput)
	}

	skill, err := s.skills.SkillByName(ctx, name)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			return nil, err
		}

		skill = &types.Skill{Name: name}
		if description != "" {
			skill.Description = &description
		}

		if createErr := s.skills.Create(ctx, skill); createErr != nil {
			// Lost a create race; the name now exists.
			skill, err = s.skills.SkillByName(ctx, name)
			if err != nil {
				return nil, createErr
			}
		} else {
			s.logger.WithFields(logrus.Fields{
				"skill_id": skill.ID,
				"name":     name,
			}).Info("skill created")
		}
	}

	if err := s.skills.AttachToVolunteer(ctx, identity.AccountID, skill.ID); err != nil {
		return nil, err
	}

	return skill, nil
}

func (s *SkillService) RemoveSkill(ctx context.Context, identity *types.Identity, skillID string) error {
	if err := requireVolunteer(identity); err != nil {
		return err
	}

	return s.skills.DetachFromVolunteer(ctx, identity.AccountID, skillID)
}
