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

const signupTableName = "communityconnect.signups"

var signupColumns = utils.StructTagValues(types.Signup{})

type SignupRepository struct {
	pool *pgxpool.Pool
}

func NewSignupRepository(pool *pgxpool.Pool) *SignupRepository {
	return &SignupRepository{pool: pool}
}

func (r *SignupRepository) Signup(ctx context.Context, signupID string) (*types.Signup, error) {
	query, args, err := psql().
		Select(signupColumns...).
		From(signupTableName).
		Where(sq.Eq{"id": signupID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate signup query: %w", err)
	}

	var signup types.Signup
	err = pgxscan.Get(ctx, r.pool, &signup, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("signup %s: %w", signupID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch signup: %w", err)
	}

	return &signup, nil
}

// Create inserts a signup. A second signup for the same (volunteer, event)
// pair trips the unique constraint and comes back as ErrDuplicateSignup.
func (r *SignupRepository) Create(ctx context.Context, signup *types.Signup) error {
	now := time.Now()
	signup.ID = utils.NanoID()
	signup.CreatedAt = now
	signup.UpdatedAt = now

	query, args, err := psql().
		Insert(signupTableName).
		SetMap(utils.StructToMap(signup)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert signup query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("volunteer %s event %s: %w", signup.VolunteerID, signup.EventID, types.ErrDuplicateSignup)
	}

	return utils.ErrorWrapOrNil(err, "failed to create signup")
}

func (r *SignupRepository) UpdateStatusRole(ctx context.Context, signupID string, status types.SignupStatus, roleID *string) error {
	query, args, err := psql().
		Update(signupTableName).
		Set("status", status).
		Set("role_id", roleID).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": signupID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update signup query for signup %s: %w", signupID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to update signup")
}

func (r *SignupRepository) Delete(ctx context.Context, signupID string) error {
	query, args, err := psql().
		Delete(signupTableName).
		Where(sq.Eq{"id": signupID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete signup query for signup %s: %w", signupID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to delete signup")
}

// SignupsForEvent is the organisation's view: signups joined with each
// volunteer's name and date of birth and the assigned role name.
func (r *SignupRepository) SignupsForEvent(ctx context.Context, eventID string) ([]*types.EventSignup, error) {
	columns := append(prefixColumns("s", signupColumns),
		"v.first_name", "v.last_name", "v.date_of_birth", "ro.name AS role_name")

	query, args, err := psql().
		Select(columns...).
		From(signupTableName + " s").
		Join(volunteerTableName + " v ON v.id = s.volunteer_id").
		LeftJoin(roleTableName + " ro ON ro.id = s.role_id").
		Where(sq.Eq{"s.event_id": eventID}).
		OrderBy("s.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event signups query: %w", err)
	}

	var signups []*types.EventSignup
	err = pgxscan.Select(ctx, r.pool, &signups, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event signups: %w", err)
	}

	return signups, nil
}

// SignupsForVolunteer is the volunteer's view: signups joined with event
// name and date and the assigned role name.
func (r *SignupRepository) SignupsForVolunteer(ctx context.Context, volunteerID string) ([]*types.VolunteerSignup, error) {
	columns := append(prefixColumns("s", signupColumns),
		"e.name AS event_name", "e.date AS event_date", "ro.name AS role_name")

	query, args, err := psql().
		Select(columns...).
		From(signupTableName + " s").
		Join(eventTableName + " e ON e.id = s.event_id").
		LeftJoin(roleTableName + " ro ON ro.id = s.role_id").
		Where(sq.Eq{"s.volunteer_id": volunteerID}).
		OrderBy("e.date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteer signups query: %w", err)
	}

	var signups []*types.VolunteerSignup
	err = pgxscan.Select(ctx, r.pool, &signups, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer signups: %w", err)
	}

	return signups, nil
}
