package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

const (
	defaultScanInterval = time.Minute
	defaultScanTimeout  = 10 * time.Second
)

type dueLister interface {
	ListDue(ctx context.Context, from, to time.Time) ([]*domain.Reminder, error)
}

type enqueuer interface {
	Enqueue(ctx context.Context, r *domain.Reminder) error
}

// ReminderScanConfig controls the scan cadence.
type ReminderScanConfig struct {
	Interval  time.Duration
	Lookahead time.Duration
	Timeout   time.Duration
}

// ReminderScan periodically enqueues reminders that fall inside the lookahead window.
type ReminderScan struct {
	repo  dueLister
	queue enqueuer
	cfg   ReminderScanConfig
	log   zerolog.Logger
	now   func() time.Time
}

func NewReminderScan(repo dueLister, queue enqueuer, cfg ReminderScanConfig, log zerolog.Logger) *ReminderScan {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultScanInterval
	}
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = 24 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultScanTimeout
	}
	return &ReminderScan{repo: repo, queue: queue, cfg: cfg, log: log, now: time.Now}
}

// Run scans once immediately and then on every tick until ctx is cancelled.
func (j *ReminderScan) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.cfg.Interval)
	defer ticker.Stop()

	j.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			j.scan(ctx)
		}
	}
}

// scan returns how many reminders were enqueued.
func (j *ReminderScan) scan(ctx context.Context) int {
	now := j.now().UTC()
	tickCtx, cancel := context.WithTimeout(ctx, j.cfg.Timeout)
	defer cancel()

	due, err := j.repo.ListDue(tickCtx, now, now.Add(j.cfg.Lookahead))
	if err != nil {
		j.log.Error().Err(err).Msg("reminder scan failed")
		return 0
	}

	enqueued := 0
	for _, r := range due {
		if err := j.queue.Enqueue(tickCtx, r); err != nil {
			j.log.Warn().Err(err).Str("reminder_id", r.ID).Msg("reminder not enqueued, retrying next scan")
			continue
		}
		enqueued++
	}
	if enqueued > 0 {
		j.log.Debug().Int("enqueued", enqueued).Msg("reminder scan complete")
	}
	return enqueued
}
