package ports

import (
	"context"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// EventFilter narrows catalog listings. Results are always ordered by date ascending.
type EventFilter struct {
	OpenOnly  bool
	CreatedBy string // empty = any creator
}

// EventRepository persists the event catalog.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]*domain.Event, error)
	// Delete removes the event and its registrations.
	Delete(ctx context.Context, id string) error
}
