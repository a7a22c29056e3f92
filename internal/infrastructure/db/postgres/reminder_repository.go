package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

const reminderColumns = `id, user_id, title, note, remind_at, created_at, updated_at`

type ReminderRepository struct {
	pool *pgxpool.Pool
}

func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

func (r *ReminderRepository) Create(ctx context.Context, rem *domain.Reminder) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rem.ID, rem.UserID, rem.Title, rem.Note, rem.RemindAt.UTC(), rem.CreatedAt, rem.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) Update(ctx context.Context, rem *domain.Reminder) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE reminders
		SET title = $3, note = $4, remind_at = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
	`, rem.ID, rem.UserID, rem.Title, rem.Note, rem.RemindAt.UTC(), rem.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	reminders, err := r.query(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, err
	}
	if len(reminders) == 0 {
		return nil, domain.ErrReminderNotFound
	}
	return reminders[0], nil
}

func (r *ReminderRepository) ListFrom(ctx context.Context, userID string, from time.Time) ([]*domain.Reminder, error) {
	return r.query(ctx, `
		SELECT `+reminderColumns+` FROM reminders
		WHERE user_id = $1 AND remind_at >= $2
		ORDER BY remind_at
	`, userID, from.UTC())
}

func (r *ReminderRepository) ListDue(ctx context.Context, from, to time.Time) ([]*domain.Reminder, error) {
	return r.query(ctx, `
		SELECT `+reminderColumns+` FROM reminders
		WHERE remind_at BETWEEN $1 AND $2
		ORDER BY remind_at
	`, from.UTC(), to.UTC())
}

func (r *ReminderRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Reminder, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	reminders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Reminder, error) {
		var rem domain.Reminder
		err := row.Scan(&rem.ID, &rem.UserID, &rem.Title, &rem.Note, &rem.RemindAt, &rem.CreatedAt, &rem.UpdatedAt)
		rem.RemindAt = rem.RemindAt.UTC()
		return &rem, err
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("scan reminders: %w", err)
	}
	return reminders, nil
}

var _ ports.ReminderRepository = (*ReminderRepository)(nil)
