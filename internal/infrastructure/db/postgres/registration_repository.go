package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO event_registrations (id, student_id, event_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, reg.ID, reg.StudentID, reg.EventID, reg.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, studentID, eventID string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM event_registrations WHERE student_id = $1 AND event_id = $2)
	`, studentID, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}

func (r *RegistrationRepository) ListEventIDs(ctx context.Context, studentID string) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT event_id FROM event_registrations WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan registrations: %w", err)
	}
	return ids, nil
}

func (r *RegistrationRepository) ListRegisteredEvents(ctx context.Context, studentID string) ([]*domain.Event, error) {
	return queryEvents(ctx, r.pool, `
		SELECT `+eventColumns+`
		FROM event_registrations er
		JOIN events e ON e.id = er.event_id
		WHERE er.student_id = $1
		ORDER BY e.date, e.created_at
	`, studentID)
}

func (r *RegistrationRepository) ListAvailableEvents(ctx context.Context, studentID string) ([]*domain.Event, error) {
	return queryEvents(ctx, r.pool, `
		SELECT `+eventColumns+`
		FROM events e
		WHERE e.is_open
		  AND NOT EXISTS (
			SELECT 1 FROM event_registrations er
			WHERE er.event_id = e.id AND er.student_id = $1
		  )
		ORDER BY e.date, e.created_at
	`, studentID)
}

func (r *RegistrationRepository) CountByEvent(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT event_id, COUNT(*) FROM event_registrations GROUP BY event_id`)
	if err != nil {
		return nil, fmt.Errorf("count by event: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			id string
			n  int64
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan counts: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

var (
	_ ports.RegistrationRepository = (*RegistrationRepository)(nil)
	_ ports.AvailableEventsQuerier = (*RegistrationRepository)(nil)
)
