package store

import (
	"context"
	"fmt"
	"time"

	"communityconnect/internal/utils"
	"communityconnect/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	eventTableName      = "communityconnect.events"
	eventSkillTableName = "communityconnect.event_skills"
)

var eventColumns = utils.StructTagValues(types.Event{})

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Event(ctx context.Context, eventID string) (*types.Event, error) {
	query, args, err := psql().
		Select(eventColumns...).
		From(eventTableName).
		Where(sq.Eq{"id": eventID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event query: %w", err)
	}

	var event types.Event
	err = pgxscan.Get(ctx, r.pool, &event, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("event %s: %w", eventID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	return &event, nil
}

// Events returns all events joined with the owning organisation's name,
// newest event date first.
func (r *EventRepository) Events(ctx context.Context) ([]*types.EventListing, error) {
	columns := append(prefixColumns("e", eventColumns), "o.name AS organisation_name")

	query, args, err := psql().
		Select(columns...).
		From(eventTableName + " e").
		Join(organisationTableName + " o ON o.id = e.organisation_id").
		OrderBy("e.date DESC", "e.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate events query: %w", err)
	}

	var events []*types.EventListing
	err = pgxscan.Select(ctx, r.pool, &events, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	return events, nil
}

func (r *EventRepository) EventsByOrganisation(ctx context.Context, organisationID string) ([]*types.Event, error) {
	query, args, err := psql().
		Select(eventColumns...).
		From(eventTableName).
		Where(sq.Eq{"organisation_id": organisationID}).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate organisation events query: %w", err)
	}

	var events []*types.Event
	err = pgxscan.Select(ctx, r.pool, &events, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organisation events: %w", err)
	}

	return events, nil
}

// Create inserts the event and its skill requirements in one transaction.
func (r *EventRepository) Create(ctx context.Context, event *types.Event, skillIDs []string) error {
	now := time.Now()
	event.ID = utils.NanoID()
	event.CreatedAt = now
	event.UpdatedAt = now

	query, args, err := psql().
		Insert(eventTableName).
		SetMap(utils.StructToMap(event)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert event query: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin create event transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	if err := insertEventSkills(ctx, tx, event.ID, skillIDs); err != nil {
		return err
	}

	return utils.ErrorWrapOrNil(tx.Commit(ctx), "failed to commit create event")
}

// Update rewrites the event row and replaces its skill requirements with
// the supplied set (delete all, re-insert). Last write wins; there is no
// merge. The owning organisation id is never touched here.
func (r *EventRepository) Update(ctx context.Context, eventID string, event *types.Event, skillIDs []string) error {
	event.ID = eventID
	event.UpdatedAt = time.Now()

	eventMap := utils.StructToMap(event)
	delete(eventMap, "organisation_id")
	delete(eventMap, "created_at")

	query, args, err := psql().
		Update(eventTableName).
		SetMap(eventMap).
		Where(sq.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update event query for event %s: %w", eventID, err)
	}

	deleteQuery, deleteArgs, err := psql().
		Delete(eventSkillTableName).
		Where(sq.Eq{"event_id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete event skills query for event %s: %w", eventID, err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin update event transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	if _, err := tx.Exec(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("failed to clear event skills: %w", err)
	}

	if err := insertEventSkills(ctx, tx, eventID, skillIDs); err != nil {
		return err
	}

	return utils.ErrorWrapOrNil(tx.Commit(ctx), "failed to commit update event")
}

// Delete removes the event. Signups and skill requirements referencing it
// go with it through the schema's ON DELETE CASCADE.
func (r *EventRepository) Delete(ctx context.Context, eventID string) error {
	query, args, err := psql().
		Delete(eventTableName).
		Where(sq.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete event query for event %s: %w", eventID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to delete event")
}

func (r *EventRepository) Counts(ctx context.Context, eventID string) (*types.EventCounts, error) {
	query, args, err := psql().
		Select(
			"(SELECT COUNT(*) FROM "+eventSkillTableName+" es WHERE es.event_id = e.id) AS required_skills",
			"(SELECT COUNT(*) FROM "+signupTableName+" s WHERE s.event_id = e.id AND s.status = 'Accepted') AS accepted",
			"(SELECT COUNT(*) FROM "+signupTableName+" s WHERE s.event_id = e.id AND s.status = 'Pending') AS pending",
		).
		From(eventTableName + " e").
		Where(sq.Eq{"e.id": eventID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event counts query: %w", err)
	}

	var counts types.EventCounts
	err = pgxscan.Get(ctx, r.pool, &counts, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("event %s: %w", eventID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch event counts: %w", err)
	}

	return &counts, nil
}

func insertEventSkills(ctx context.Context, tx pgx.Tx, eventID string, skillIDs []string) error {
	if len(skillIDs) == 0 {
		return nil
	}

	builder := psql().Insert(eventSkillTableName).Columns("event_id", "skill_id")
	for _, skillID := range skillIDs {
		builder = builder.Values(eventID, skillID)
	}

	query, args, err := builder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert event skills query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert event skills: %w", err)
	}

	return nil
}
