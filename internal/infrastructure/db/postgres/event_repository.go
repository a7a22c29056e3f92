package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

const eventColumns = `e.id, e.title, e.description, e.date, e.location, e.is_open, e.created_by, e.created_at`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO events (id, title, description, date, location, is_open, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.Title, e.Description, e.Date, e.Location, e.IsOpen, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events e WHERE e.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	event, err := pgx.CollectExactlyOneRow(rows, scanEvent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) List(ctx context.Context, filter ports.EventFilter) ([]*domain.Event, error) {
	var (
		where []string
		args  []any
	)
	if filter.OpenOnly {
		where = append(where, "e.is_open")
	}
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		where = append(where, fmt.Sprintf("e.created_by = $%d", len(args)))
	}

	query := `SELECT ` + eventColumns + ` FROM events e`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY e.date, e.created_at`

	return queryEvents(ctx, r.pool, query, args...)
}

// Delete removes the event; registrations go with it through ON DELETE CASCADE.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.CollectableRow) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &e.IsOpen, &e.CreatedBy, &e.CreatedAt)
	return &e, err
}

func queryEvents(ctx context.Context, pool *pgxpool.Pool, query string, args ...any) ([]*domain.Event, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	return events, nil
}

var _ ports.EventRepository = (*EventRepository)(nil)
