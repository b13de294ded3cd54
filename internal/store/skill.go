package store

import (
	"context"
	"fmt"
	"time"

	"communityconnect/internal/utils"
	"communityconnect/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	skillTableName          = "communityconnect.skills"
	volunteerSkillTableName = "communityconnect.volunteer_skills"
)

var skillColumns = utils.StructTagValues(types.Skill{})

type SkillRepository struct {
	pool *pgxpool.Pool
}

func NewSkillRepository(pool *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{pool: pool}
}

func (r *SkillRepository) Skill(ctx context.Context, skillID string) (*types.Skill, error) {
	query, args, err := psql().
		Select(skillColumns...).
		From(skillTableName).
		Where(sq.Eq{"id": skillID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate skill query: %w", err)
	}

	var skill types.Skill
	err = pgxscan.Get(ctx, r.pool, &skill, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("skill %s: %w", skillID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch skill: %w", err)
	}

	return &skill, nil
}

// SkillByName looks a skill up by exact name match, for lazy creation.
func (r *SkillRepository) SkillByName(ctx context.Context, name string) (*types.Skill, error) {
	query, args, err := psql().
		Select(skillColumns...).
		From(skillTableName).
		Where(sq.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate skill-by-name query: %w", err)
	}

	var skill types.Skill
	err = pgxscan.Get(ctx, r.pool, &skill, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("skill %q: %w", name, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch skill by name: %w", err)
	}

	return &skill, nil
}

func (r *SkillRepository) Create(ctx context.Context, skill *types.Skill) error {
	now := time.Now()
	skill.ID = utils.NanoID()
	skill.CreatedAt = now
	skill.UpdatedAt = now

	query, args, err := psql().
		Insert(skillTableName).
		SetMap(utils.StructToMap(skill)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert skill query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("skill %q: %w", skill.Name, types.ErrInvalidInput)
	}

	return utils.ErrorWrapOrNil(err, "failed to create skill")
}

// SkillsWithCounts returns every skill with the number of volunteers
// holding it.
func (r *SkillRepository) SkillsWithCounts(ctx context.Context) ([]*types.SkillCount, error) {
	columns := append(prefixColumns("sk", skillColumns),
		"(SELECT COUNT(*) FROM "+volunteerSkillTableName+" vs WHERE vs.skill_id = sk.id) AS volunteer_count")

	query, args, err := psql().
		Select(columns...).
		From(skillTableName + " sk").
		OrderBy("sk.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate skill counts query: %w", err)
	}

	var skills []*types.SkillCount
	err = pgxscan.Select(ctx, r.pool, &skills, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skill counts: %w", err)
	}

	return skills, nil
}

func (r *SkillRepository) SkillsForVolunteer(ctx context.Context, volunteerID string) ([]*types.Skill, error) {
	query, args, err := psql().
		Select(prefixColumns("sk", skillColumns)...).
		From(skillTableName + " sk").
		Join(volunteerSkillTableName + " vs ON vs.skill_id = sk.id").
		Where(sq.Eq{"vs.volunteer_id": volunteerID}).
		OrderBy("sk.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteer skills query: %w", err)
	}

	var skills []*types.Skill
	err = pgxscan.Select(ctx, r.pool, &skills, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer skills: %w", err)
	}

	return skills, nil
}

func (r *SkillRepository) SkillsForEvent(ctx context.Context, eventID string) ([]*types.Skill, error) {
	query, args, err := psql().
		Select(prefixColumns("sk", skillColumns)...).
		From(skillTableName + " sk").
		Join(eventSkillTableName + " es ON es.skill_id = sk.id").
		Where(sq.Eq{"es.event_id": eventID}).
		OrderBy("sk.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event skills query: %w", err)
	}

	var skills []*types.Skill
	err = pgxscan.Select(ctx, r.pool, &skills, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event skills: %w", err)
	}

	return skills, nil
}

// AttachToVolunteer records that a volunteer holds a skill. Attaching a
// skill the volunteer already holds is a no-op.
func (r *SkillRepository) AttachToVolunteer(ctx context.Context, volunteerID, skillID string) error {
	query, args, err := psql().
		Insert(volunteerSkillTableName).
		Columns("volunteer_id", "skill_id").
		Values(volunteerID, skillID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate attach skill query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to attach skill to volunteer")
}

func (r *SkillRepository) DetachFromVolunteer(ctx context.Context, volunteerID, skillID string) error {
	query, args, err := psql().
		Delete(volunteerSkillTableName).
		Where(sq.Eq{"volunteer_id": volunteerID, "skill_id": skillID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate detach skill query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to detach skill from volunteer")
}
