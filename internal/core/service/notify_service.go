package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

type notifyService struct {
	notifier ports.ReminderNotifier
	dedup    ports.NotifyDedup
	log      zerolog.Logger
}

// NewNotifyService returns a NotifyService that delivers each reminder
// instant at most once.
func NewNotifyService(notifier ports.ReminderNotifier, dedup ports.NotifyDedup, log zerolog.Logger) ports.NotifyService {
	return &notifyService{notifier: notifier, dedup: dedup, log: log}
}

// Process deduplicates and delivers a single due reminder.
func (s *notifyService) Process(ctx context.Context, r *domain.Reminder) error {
	// 1. Skip reminders already delivered for this remind_at. Without a
	// working dedup store nothing is sent; the next scan retries.
	isDup, err := s.dedup.IsDuplicate(ctx, r.ID, r.RemindAt)
	if err != nil {
		return fmt.Errorf("dedup check %s: %w", r.ID, err)
	}
	if isDup {
		s.log.Debug().Str("reminder_id", r.ID).Msg("reminder already notified")
		return nil
	}

	// 2. Mark before delivering so a crash between the two never notifies twice.
	if err := s.dedup.Mark(ctx, r.ID, r.RemindAt); err != nil {
		return fmt.Errorf("mark reminder %s: %w", r.ID, err)
	}

	if err := s.notifier.Notify(ctx, r); err != nil {
		return fmt.Errorf("notify reminder %s: %w", r.ID, err)
	}

	s.log.Info().
		Str("reminder_id", r.ID).
		Str("user_id", r.UserID).
		Time("remind_at", r.RemindAt).
		Msg("reminder notified")
	return nil
}
