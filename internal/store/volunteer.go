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

const volunteerTableName = "communityconnect.volunteers"

var volunteerColumns = utils.StructTagValues(types.Volunteer{})

type VolunteerRepository struct {
	pool *pgxpool.Pool
}

func NewVolunteerRepository(pool *pgxpool.Pool) *VolunteerRepository {
	return &VolunteerRepository{pool: pool}
}

func (r *VolunteerRepository) Volunteer(ctx context.Context, volunteerID string) (*types.Volunteer, error) {
	query, args, err := psql().
		Select(volunteerColumns...).
		From(volunteerTableName).
		Where(sq.Eq{"id": volunteerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteer query: %w", err)
	}

	var volunteer types.Volunteer
	err = pgxscan.Get(ctx, r.pool, &volunteer, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("volunteer %s: %w", volunteerID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch volunteer: %w", err)
	}

	return &volunteer, nil
}

func (r *VolunteerRepository) VolunteerByEmail(ctx context.Context, email string) (*types.Volunteer, error) {
	query, args, err := psql().
		Select(volunteerColumns...).
		From(volunteerTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteer-by-email query: %w", err)
	}

	var volunteer types.Volunteer
	err = pgxscan.Get(ctx, r.pool, &volunteer, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("volunteer %s: %w", email, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch volunteer by email: %w", err)
	}

	return &volunteer, nil
}

func (r *VolunteerRepository) Volunteers(ctx context.Context) ([]*types.Volunteer, error) {
	query, args, err := psql().
		Select(volunteerColumns...).
		From(volunteerTableName).
		OrderBy("last_name ASC", "first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteers query: %w", err)
	}

	var volunteers []*types.Volunteer
	err = pgxscan.Select(ctx, r.pool, &volunteers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}

	return volunteers, nil
}

func (r *VolunteerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query, args, err := psql().
		Select("1").
		From(volunteerTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate volunteer email query: %w", err)
	}

	var one int
	err = pgxscan.Get(ctx, r.pool, &one, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check volunteer email: %w", err)
	}

	return true, nil
}

func (r *VolunteerRepository) Create(ctx context.Context, volunteer *types.Volunteer) error {
	now := time.Now()
	volunteer.ID = utils.NanoID()
	volunteer.CreatedAt = now
	volunteer.UpdatedAt = now

	query, args, err := psql().
		Insert(volunteerTableName).
		SetMap(utils.StructToMap(volunteer)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert volunteer query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("volunteer %s: %w", volunteer.Email, types.ErrDuplicateEmail)
	}

	return utils.ErrorWrapOrNil(err, "failed to create volunteer")
}

func (r *VolunteerRepository) Update(ctx context.Context, volunteerID string, volunteer *types.Volunteer) error {
	volunteer.ID = volunteerID
	volunteer.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(volunteerTableName).
		SetMap(utils.StructToMap(volunteer)).
		Where(sq.Eq{"id": volunteerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update volunteer query for volunteer %s: %w", volunteerID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("volunteer %s: %w", volunteer.Email, types.ErrDuplicateEmail)
	}

	return utils.ErrorWrapOrNil(err, "failed to update volunteer")
}
