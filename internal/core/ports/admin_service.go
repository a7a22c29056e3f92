package ports

import (
	"context"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	Participation(ctx context.Context) ([]domain.EventParticipation, error)
}
