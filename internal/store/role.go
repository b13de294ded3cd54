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

const roleTableName = "communityconnect.roles"

var roleColumns = utils.StructTagValues(types.Role{})

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) Role(ctx context.Context, roleID string) (*types.Role, error) {
	query, args, err := psql().
		Select(roleColumns...).
		From(roleTableName).
		Where(sq.Eq{"id": roleID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate role query: %w", err)
	}

	var role types.Role
	err = pgxscan.Get(ctx, r.pool, &role, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("role %s: %w", roleID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch role: %w", err)
	}

	return &role, nil
}

func (r *RoleRepository) RoleByName(ctx context.Context, name string) (*types.Role, error) {
	query, args, err := psql().
		Select(roleColumns...).
		From(roleTableName).
		Where(sq.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate role-by-name query: %w", err)
	}

	var role types.Role
	err = pgxscan.Get(ctx, r.pool, &role, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("role %q: %w", name, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch role by name: %w", err)
	}

	return &role, nil
}

func (r *RoleRepository) Roles(ctx context.Context) ([]*types.Role, error) {
	query, args, err := psql().
		Select(roleColumns...).
		From(roleTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate roles query: %w", err)
	}

	var roles []*types.Role
	err = pgxscan.Select(ctx, r.pool, &roles, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	return roles, nil
}

func (r *RoleRepository) Create(ctx context.Context, role *types.Role) error {
	now := time.Now()
	role.ID = utils.NanoID()
	role.CreatedAt = now
	role.UpdatedAt = now

	query, args, err := psql().
		Insert(roleTableName).
		SetMap(utils.StructToMap(role)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert role query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("role %q: %w", role.Name, types.ErrInvalidInput)
	}

	return utils.ErrorWrapOrNil(err, "failed to create role")
}
