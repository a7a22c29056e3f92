package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// LogNotifier delivers reminders as structured log lines. It is the default
// ReminderNotifier until a push channel exists.
type LogNotifier struct {
	log zerolog.Logger
	loc *time.Location
}

func NewLogNotifier(log zerolog.Logger, loc *time.Location) *LogNotifier {
	if loc == nil {
		loc = time.UTC
	}
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger(), loc: loc}
}

func (n *LogNotifier) Notify(_ context.Context, r *domain.Reminder) error {
	n.log.Info().
		Str("reminder_id", r.ID).
		Str("user_id", r.UserID).
		Str("title", r.Title).
		Str("remind_at_local", domain.FormatLocalDateTime(r.RemindAt, n.loc)).
		Msg("reminder due")
	return nil
}
