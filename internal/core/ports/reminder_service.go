package ports

import (
	"context"
	"time"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// ReminderInput carries a reminder as entered by its owner. RemindAtLocal is
// wall-clock time in the display timezone.
type ReminderInput struct {
	Title         string
	Note          string
	RemindAtLocal string
}

// UpcomingReminders is the result of ListUpcoming.
type UpcomingReminders struct {
	Items []*domain.Reminder
	// BadgeCount counts Items falling inside the lookahead window.
	BadgeCount int
	Lookahead  time.Duration
}

// ReminderService is the reminder store.
type ReminderService interface {
	ListUpcoming(ctx context.Context, userID string, lookahead time.Duration) (*UpcomingReminders, error)
	Create(ctx context.Context, userID string, in ReminderInput) (*domain.Reminder, error)
	Update(ctx context.Context, userID, id string, in ReminderInput) (*domain.Reminder, error)
	Delete(ctx context.Context, userID, id string) error
	Location() *time.Location
}

// ReminderNotifier delivers a due reminder to its owner.
type ReminderNotifier interface {
	Notify(ctx context.Context, r *domain.Reminder) error
}

// NotifyDedup remembers which reminder instants have been delivered.
type NotifyDedup interface {
	IsDuplicate(ctx context.Context, reminderID string, remindAt time.Time) (bool, error)
	Mark(ctx context.Context, reminderID string, remindAt time.Time) error
}

// NotifyService processes a single due reminder.
type NotifyService interface {
	Process(ctx context.Context, r *domain.Reminder) error
}
