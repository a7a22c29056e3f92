package ports

import (
	"context"
	"time"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// ReminderRepository persists per-user reminders.
type ReminderRepository interface {
	Create(ctx context.Context, r *domain.Reminder) error
	// Update replaces title, note and remind_at of a reminder owned by r.UserID.
	// Returns domain.ErrReminderNotFound when no such reminder exists for that owner.
	Update(ctx context.Context, r *domain.Reminder) error
	Delete(ctx context.Context, userID, id string) error
	FindByID(ctx context.Context, userID, id string) (*domain.Reminder, error)
	// ListFrom returns the user's reminders with remind_at >= from, ascending.
	ListFrom(ctx context.Context, userID string, from time.Time) ([]*domain.Reminder, error)
	// ListDue returns reminders of all users with from <= remind_at <= to, ascending.
	ListDue(ctx context.Context, from, to time.Time) ([]*domain.Reminder, error)
}
