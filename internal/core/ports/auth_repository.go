package ports

import (
	"context"
	"time"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// CredentialRepository persists sign-in secrets.
type CredentialRepository interface {
	// Create returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, cred *domain.Credential) error
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	// Delete returns domain.ErrUserNotFound when no credential has this id.
	Delete(ctx context.Context, id string) error
}

// UserRepository persists user profiles (the rows roles are read from).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// FindByID returns domain.ErrUserNotFound when no profile row exists.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Delete removes the profile together with the user's registrations and reminders.
	Delete(ctx context.Context, id string) error
}

// TokenDenylist records signed-out token ids, and deleted users, until
// every token they could hold has expired.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	RevokeUser(ctx context.Context, userID string, until time.Time) error
	IsUserRevoked(ctx context.Context, userID string) (bool, error)
}
