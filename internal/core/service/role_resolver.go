package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

const resolveTimeout = 5 * time.Second

// RoleResolver looks up a principal's role from its profile row. Principals
// without a profile resolve to student; a nil session resolves to guest.
//
// Resolved roles are cached per principal. The cache is refreshed on sign-in
// and dropped on sign-out through the SessionHub subscription.
type RoleResolver struct {
	users ports.UserRepository
	log   zerolog.Logger

	mu    sync.RWMutex
	cache map[string]string

	unsubscribe func()
}

func NewRoleResolver(users ports.UserRepository, hub *SessionHub, log zerolog.Logger) *RoleResolver {
	r := &RoleResolver{
		users: users,
		log:   log,
		cache: make(map[string]string),
	}
	if hub != nil {
		r.unsubscribe = hub.Subscribe(r.onSessionChange)
	}
	return r
}

// Resolve returns the caller's identity. It never fails: lookup errors are
// logged and fall through to the student default.
func (r *RoleResolver) Resolve(ctx context.Context, session *domain.Session) domain.Identity {
	if !session.Authenticated() {
		return domain.Identity{Role: domain.RoleGuest}
	}

	principal := session.Principal
	r.mu.RLock()
	role, ok := r.cache[principal.ID]
	r.mu.RUnlock()
	if !ok {
		role = r.lookup(ctx, principal.ID)
	}

	return domain.Identity{Principal: &principal, Role: role}
}

// Close stops listening for session changes.
func (r *RoleResolver) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}

func (r *RoleResolver) lookup(ctx context.Context, principalID string) string {
	user, err := r.users.FindByID(ctx, principalID)
	switch {
	case err == nil && user.Role != "":
		r.store(principalID, user.Role)
		return user.Role
	case err == nil, errors.Is(err, domain.ErrUserNotFound):
		r.store(principalID, domain.RoleStudent)
		return domain.RoleStudent
	default:
		r.log.Warn().Err(err).Str("user_id", principalID).Msg("role lookup failed, using default role")
		return domain.RoleStudent
	}
}

func (r *RoleResolver) store(principalID, role string) {
	r.mu.Lock()
	r.cache[principalID] = role
	r.mu.Unlock()
}

func (r *RoleResolver) forget(principalID string) {
	r.mu.Lock()
	delete(r.cache, principalID)
	r.mu.Unlock()
}

func (r *RoleResolver) onSessionChange(change domain.SessionChange) {
	switch change.Kind {
	case domain.SessionSignedIn, domain.SessionSignedUp:
		r.forget(change.Principal.ID)
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()
		role := r.lookup(ctx, change.Principal.ID)
		r.log.Debug().Str("user_id", change.Principal.ID).Str("role", role).Msg("role re-resolved")
	case domain.SessionSignedOut:
		r.forget(change.Principal.ID)
	}
}
