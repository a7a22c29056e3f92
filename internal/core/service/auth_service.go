package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

// AuthService implements sign-up, sign-in and sign-out.
type AuthService struct {
	creds     ports.CredentialRepository
	users     ports.UserRepository
	denylist  ports.TokenDenylist
	hub       *SessionHub
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	creds ports.CredentialRepository,
	users ports.UserRepository,
	denylist ports.TokenDenylist,
	hub *SessionHub,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if hub == nil {
		hub = NewSessionHub()
	}
	return &AuthService{
		creds:     creds,
		users:     users,
		denylist:  denylist,
		hub:       hub,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// SignUp creates the credential and then the profile row carrying role.
// An empty role defaults to student.
func (s *AuthService) SignUp(ctx context.Context, email, password, role string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if role == "" {
		role = domain.RoleStudent
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	id := uuid.NewString()
	if err := s.creds.Create(ctx, &domain.Credential{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}); err != nil {
		return nil, err
	}

	user := &domain.User{ID: id, Email: email, Role: role, CreatedAt: now}
	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("profile insert failed after credential insert")
		if delErr := s.creds.Delete(ctx, id); delErr != nil {
			s.log.Warn().Err(delErr).Str("user_id", id).Msg("failed to roll back credential")
		}
		return nil, fmt.Errorf("sign up: create profile: %w", err)
	}

	s.log.Info().Str("user_id", id).Str("role", role).Msg("user signed up")
	s.hub.Publish(domain.SessionChange{
		Kind:      domain.SessionSignedUp,
		Principal: domain.Principal{ID: id, Email: email},
		At:        now,
	})
	return user, nil
}

// SignIn verifies the password and issues a signed session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.issueSession(cred)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(domain.SessionChange{
		Kind:      domain.SessionSignedIn,
		Principal: session.Principal,
		At:        s.now().UTC(),
	})
	return session, nil
}

// SignOut revokes the session's token until it would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, session *domain.Session) error {
	if !session.Authenticated() {
		return domain.ErrInvalidCredentials
	}

	if session.TokenID != "" && s.denylist != nil {
		if err := s.denylist.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
			return fmt.Errorf("sign out: %w", err)
		}
	}

	s.hub.Publish(domain.SessionChange{
		Kind:      domain.SessionSignedOut,
		Principal: session.Principal,
		At:        s.now().UTC(),
	})
	return nil
}

func (s *AuthService) issueSession(cred *domain.Credential) (*domain.Session, error) {
	expiresAt := s.now().Add(s.tokenTTL).UTC()
	tokenID := uuid.NewString()

	claims := jwt.MapClaims{
		"sub":   cred.ID,
		"email": cred.Email,
		"jti":   tokenID,
		"iat":   s.now().Unix(),
		"exp":   expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		Principal: domain.Principal{ID: cred.ID, Email: cred.Email},
		Token:     signed,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
