package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

// DefaultLookahead is the notification badge window.
const DefaultLookahead = 24 * time.Hour

// ReminderService is the per-user reminder store. Wall-clock input and
// output use one fixed display location regardless of the viewer.
type ReminderService struct {
	repo      ports.ReminderRepository
	loc       *time.Location
	lookahead time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewReminderService(repo ports.ReminderRepository, loc *time.Location, lookahead time.Duration, log zerolog.Logger) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return &ReminderService{repo: repo, loc: loc, lookahead: lookahead, log: log, now: time.Now}
}

// Location is the fixed display timezone.
func (s *ReminderService) Location() *time.Location { return s.loc }

// ListUpcoming returns the user's future reminders and how many of them fall
// within lookahead. Past reminders are never returned or counted.
func (s *ReminderService) ListUpcoming(ctx context.Context, userID string, lookahead time.Duration) (*ports.UpcomingReminders, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if lookahead <= 0 {
		lookahead = s.lookahead
	}

	now := s.now().UTC()
	items, err := s.repo.ListFrom(ctx, userID, now)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to list reminders")
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	upcoming := make([]*domain.Reminder, 0, len(items))
	for _, r := range items {
		if !r.RemindAt.Before(now) {
			upcoming = append(upcoming, r)
		}
	}

	horizon := now.Add(lookahead)
	badge := 0
	for _, r := range upcoming {
		if !r.RemindAt.After(horizon) {
			badge++
		}
	}

	return &ports.UpcomingReminders{Items: upcoming, BadgeCount: badge, Lookahead: lookahead}, nil
}

func (s *ReminderService) Create(ctx context.Context, userID string, in ports.ReminderInput) (*domain.Reminder, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	title, remindAt, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	r := &domain.Reminder{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Note:      strings.TrimSpace(in.Note),
		RemindAt:  remindAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to create reminder")
		return nil, fmt.Errorf("create reminder: %w", err)
	}

	s.log.Info().Str("reminder_id", r.ID).Str("user_id", userID).Time("remind_at", remindAt).Msg("reminder created")
	return r, nil
}

func (s *ReminderService) Update(ctx context.Context, userID, id string, in ports.ReminderInput) (*domain.Reminder, error) {
	if userID == "" || id == "" {
		return nil, fmt.Errorf("%w: user id and reminder id are required", domain.ErrValidation)
	}
	title, remindAt, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("update reminder: %w", err)
	}

	existing.Title = title
	existing.Note = strings.TrimSpace(in.Note)
	existing.RemindAt = remindAt
	existing.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update reminder: %w", err)
	}
	return existing, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return fmt.Errorf("%w: user id and reminder id are required", domain.ErrValidation)
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

func (s *ReminderService) validate(in ports.ReminderInput) (string, time.Time, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", time.Time{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.RemindAtLocal) == "" {
		return "", time.Time{}, fmt.Errorf("%w: remind_at is required", domain.ErrValidation)
	}
	remindAt, err := domain.ParseLocalDateTime(in.RemindAtLocal, s.loc)
	if err != nil {
		return "", time.Time{}, err
	}
	return title, remindAt, nil
}
