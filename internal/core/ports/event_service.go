package ports

import (
	"context"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// CreateEventInput carries the catalog fields supplied by a teacher or admin.
type CreateEventInput struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD
	Location    string
	IsOpen      *bool // nil = open
	CreatedBy   string
}

// EventService is the event catalog.
type EventService interface {
	ListOpen(ctx context.Context) ([]*domain.Event, error)
	ListAll(ctx context.Context) ([]*domain.Event, error)
	ListByCreator(ctx context.Context, userID string) ([]*domain.Event, error)
	Create(ctx context.Context, input CreateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
