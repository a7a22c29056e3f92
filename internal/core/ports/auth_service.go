package ports

import (
	"context"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

type AuthService interface {
	SignUp(ctx context.Context, email, password, role string) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context, session *domain.Session) error
}

// RoleResolver maps a session to its identity and role.
type RoleResolver interface {
	Resolve(ctx context.Context, session *domain.Session) domain.Identity
}
