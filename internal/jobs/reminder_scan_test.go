package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

type stubDue struct {
	from, to time.Time
	items    []*domain.Reminder
	err      error
}

func (s *stubDue) ListDue(_ context.Context, from, to time.Time) ([]*domain.Reminder, error) {
	s.from, s.to = from, to
	return s.items, s.err
}

type stubQueue struct {
	got  []string
	fail map[string]bool
}

func (q *stubQueue) Enqueue(_ context.Context, r *domain.Reminder) error {
	if q.fail[r.ID] {
		return errors.New("full")
	}
	q.got = append(q.got, r.ID)
	return nil
}

func TestReminderScan_EnqueuesWindow(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	repo := &stubDue{items: []*domain.Reminder{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}}
	queue := &stubQueue{fail: map[string]bool{"r2": true}}

	job := NewReminderScan(repo, queue, ReminderScanConfig{Lookahead: time.Hour}, zerolog.Nop())
	job.now = func() time.Time { return now }

	if n := job.scan(context.Background()); n != 2 {
		t.Fatalf("expected 2 enqueued, got %d", n)
	}
	if !repo.from.Equal(now) || !repo.to.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected window [%v, %v]", repo.from, repo.to)
	}
	if len(queue.got) != 2 || queue.got[0] != "r1" || queue.got[1] != "r3" {
		t.Fatalf("unexpected enqueued ids: %v", queue.got)
	}
}

func TestReminderScan_ListError(t *testing.T) {
	job := NewReminderScan(&stubDue{err: errors.New("down")}, &stubQueue{}, ReminderScanConfig{}, zerolog.Nop())
	if n := job.scan(context.Background()); n != 0 {
		t.Fatalf("expected nothing enqueued, got %d", n)
	}
}

func TestReminderScan_RunStopsOnCancel(t *testing.T) {
	job := NewReminderScan(&stubDue{}, &stubQueue{}, ReminderScanConfig{Interval: 10 * time.Millisecond}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- job.Run(ctx) }()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error on cancel, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
