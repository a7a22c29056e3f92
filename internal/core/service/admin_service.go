package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

type AdminService struct {
	users    ports.UserRepository
	creds    ports.CredentialRepository
	events   ports.EventRepository
	regs     ports.RegistrationRepository
	denylist ports.TokenDenylist
	tokenTTL time.Duration
	hub      *SessionHub
	log      zerolog.Logger
}

// NewAdminService wires the admin operations. tokenTTL bounds how long a
// deleted user's outstanding tokens stay rejected.
func NewAdminService(
	users ports.UserRepository,
	creds ports.CredentialRepository,
	events ports.EventRepository,
	regs ports.RegistrationRepository,
	denylist ports.TokenDenylist,
	tokenTTL time.Duration,
	hub *SessionHub,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		creds:    creds,
		events:   events,
		regs:     regs,
		denylist: denylist,
		tokenTTL: tokenTTL,
		hub:      hub,
		log:      log,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser revokes every outstanding token of the user, removes the profile
// (and with it registrations and reminders) then the credentials, and drops
// any cached role. A user with only a credential row is deleted too.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	// Revoke first: a failure here leaves the account intact and retryable.
	if err := s.denylist.RevokeUser(ctx, id, time.Now().Add(s.tokenTTL)); err != nil {
		return fmt.Errorf("delete user: revoke tokens: %w", err)
	}

	profileErr := s.users.Delete(ctx, id)
	if profileErr != nil && !errors.Is(profileErr, domain.ErrUserNotFound) {
		return fmt.Errorf("delete user: %w", profileErr)
	}
	credErr := s.creds.Delete(ctx, id)
	switch {
	case credErr == nil:
	case errors.Is(credErr, domain.ErrUserNotFound):
		if profileErr != nil {
			return domain.ErrUserNotFound
		}
	default:
		s.log.Warn().Err(credErr).Str("user_id", id).Msg("profile deleted but credentials remain")
	}

	if s.hub != nil {
		s.hub.Publish(domain.SessionChange{
			Kind:      domain.SessionSignedOut,
			Principal: domain.Principal{ID: id},
			At:        time.Now().UTC(),
		})
	}
	s.log.Info().Str("user_id", id).Bool("had_profile", profileErr == nil).Msg("user deleted")
	return nil
}

// Participation reports the participant count of every event, by date.
func (s *AdminService) Participation(ctx context.Context) ([]domain.EventParticipation, error) {
	events, err := s.events.List(ctx, ports.EventFilter{})
	if err != nil {
		return nil, fmt.Errorf("participation: %w", err)
	}
	counts, err := s.regs.CountByEvent(ctx)
	if err != nil {
		return nil, fmt.Errorf("participation: %w", err)
	}

	out := make([]domain.EventParticipation, 0, len(events))
	for _, e := range events {
		out = append(out, domain.EventParticipation{
			EventID:      e.ID,
			Title:        e.Title,
			Date:         e.Date,
			Participants: counts[e.ID],
		})
	}
	return out, nil
}
