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

const organisationTableName = "communityconnect.organisations"

var organisationColumns = utils.StructTagValues(types.Organisation{})

type OrganisationRepository struct {
	pool *pgxpool.Pool
}

func NewOrganisationRepository(pool *pgxpool.Pool) *OrganisationRepository {
	return &OrganisationRepository{pool: pool}
}

func (r *OrganisationRepository) Organisation(ctx context.Context, organisationID string) (*types.Organisation, error) {
	query, args, err := psql().
		Select(organisationColumns...).
		From(organisationTableName).
		Where(sq.Eq{"id": organisationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate organisation query: %w", err)
	}

	var organisation types.Organisation
	err = pgxscan.Get(ctx, r.pool, &organisation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("organisation %s: %w", organisationID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch organisation: %w", err)
	}

	return &organisation, nil
}

func (r *OrganisationRepository) OrganisationByEmail(ctx context.Context, email string) (*types.Organisation, error) {
	query, args, err := psql().
		Select(organisationColumns...).
		From(organisationTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate organisation-by-email query: %w", err)
	}

	var organisation types.Organisation
	err = pgxscan.Get(ctx, r.pool, &organisation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("organisation %s: %w", email, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch organisation by email: %w", err)
	}

	return &organisation, nil
}

func (r *OrganisationRepository) Organisations(ctx context.Context) ([]*types.Organisation, error) {
	query, args, err := psql().
		Select(organisationColumns...).
		From(organisationTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate organisations query: %w", err)
	}

	var organisations []*types.Organisation
	err = pgxscan.Select(ctx, r.pool, &organisations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organisations: %w", err)
	}

	return organisations, nil
}

func (r *OrganisationRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query, args, err := psql().
		Select("1").
		From(organisationTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate organisation email query: %w", err)
	}

	var one int
	err = pgxscan.Get(ctx, r.pool, &one, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check organisation email: %w", err)
	}

	return true, nil
}

func (r *OrganisationRepository) Create(ctx context.Context, organisation *types.Organisation) error {
	now := time.Now()
	organisation.ID = utils.NanoID()
	organisation.CreatedAt = now
	organisation.UpdatedAt = now

	query, args, err := psql().
		Insert(organisationTableName).
		SetMap(utils.StructToMap(organisation)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert organisation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("organisation %s: %w", organisation.Email, types.ErrDuplicateEmail)
	}

	return utils.ErrorWrapOrNil(err, "failed to create organisation")
}

func (r *OrganisationRepository) Update(ctx context.Context, organisationID string, organisation *types.Organisation) error {
	organisation.ID = organisationID
	organisation.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(organisationTableName).
		SetMap(utils.StructToMap(organisation)).
		Where(sq.Eq{"id": organisationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update organisation query for organisation %s: %w", organisationID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("organisation %s: %w", organisation.Email, types.ErrDuplicateEmail)
	}

	return utils.ErrorWrapOrNil(err, "failed to update organisation")
}
