package ports

import (
	"context"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// RegistrationService is the registration ledger.
type RegistrationService interface {
	ListAvailable(ctx context.Context, studentID string) ([]*domain.Event, error)
	ListRegistered(ctx context.Context, studentID string) ([]*domain.Event, error)
	Register(ctx context.Context, studentID, eventID string) (*domain.Registration, error)
}
