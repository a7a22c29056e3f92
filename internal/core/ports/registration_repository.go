package ports

import (
	"context"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// RegistrationRepository persists the student/event ledger.
type RegistrationRepository interface {
	// Create returns domain.ErrAlreadyRegistered on a (student, event) conflict.
	Create(ctx context.Context, reg *domain.Registration) error
	Exists(ctx context.Context, studentID, eventID string) (bool, error)
	ListEventIDs(ctx context.Context, studentID string) ([]string, error)
	// ListRegisteredEvents joins the student's registrations to their events, date ascending.
	ListRegisteredEvents(ctx context.Context, studentID string) ([]*domain.Event, error)
	// CountByEvent returns participant counts keyed by event id.
	CountByEvent(ctx context.Context) (map[string]int64, error)
}

// AvailableEventsQuerier is implemented by stores that can compute the open
// events a student has not joined in a single anti-join query.
type AvailableEventsQuerier interface {
	ListAvailableEvents(ctx context.Context, studentID string) ([]*domain.Event, error)
}

// RegistrationGuard serialises concurrent registration attempts for one pair.
type RegistrationGuard interface {
	// Acquire returns false when another attempt holds the guard.
	Acquire(ctx context.Context, studentID, eventID string) (bool, error)
	Release(ctx context.Context, studentID, eventID string) error
}
