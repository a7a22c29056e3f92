package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

type stubGuard struct {
	held       map[string]bool
	acquireErr error
	releases   int
}

func (g *stubGuard) Acquire(_ context.Context, studentID, eventID string) (bool, error) {
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	if g.held == nil {
		g.held = make(map[string]bool)
	}
	key := studentID + ":" + eventID
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, studentID, eventID string) error {
	g.releases++
	delete(g.held, studentID+":"+eventID)
	return nil
}

func newLedger() (*RegistrationService, *stubEventRepo, *stubRegRepo) {
	events := newStubEventRepo(
		&domain.Event{ID: "e1", Title: "Fair", Date: day("2026-11-01"), IsOpen: true},
		&domain.Event{ID: "e2", Title: "Play", Date: day("2026-11-02"), IsOpen: true},
		&domain.Event{ID: "e3", Title: "Closed", Date: day("2026-11-03"), IsOpen: false},
	)
	regs := &stubRegRepo{events: events}
	return NewRegistrationService(events, regs, &stubGuard{}, zerolog.Nop()), events, regs
}

func TestRegistrationService_AvailableAndRegisteredPartitionOpenEvents(t *testing.T) {
	svc, _, _ := newLedger()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "s1", "e2"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	available, err := svc.ListAvailable(ctx, "s1")
	if err != nil {
		t.Fatalf("ListAvailable returned error: %v", err)
	}
	registered, err := svc.ListRegistered(ctx, "s1")
	if err != nil {
		t.Fatalf("ListRegistered returned error: %v", err)
	}

	if len(available) != 1 || available[0].ID != "e1" {
		t.Fatalf("unexpected available events: %+v", available)
	}
	if len(registered) != 1 || registered[0].ID != "e2" {
		t.Fatalf("unexpected registered events: %+v", registered)
	}

	other, _ := svc.ListAvailable(ctx, "s2")
	if len(other) != 2 {
		t.Fatalf("expected other student to see both open events, got %d", len(other))
	}
}

func TestRegistrationService_RegisterTwice(t *testing.T) {
	svc, _, regs := newLedger()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "s1", "e1"); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	if _, err := svc.Register(ctx, "s1", "e1"); !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if len(regs.rows) != 1 {
		t.Fatalf("expected a single registration row, got %d", len(regs.rows))
	}
}

func TestRegistrationService_RegisterClosedOrMissing(t *testing.T) {
	svc, _, _ := newLedger()

	if _, err := svc.Register(context.Background(), "s1", "e3"); !errors.Is(err, domain.ErrEventClosed) {
		t.Fatalf("expected ErrEventClosed, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "s1", "missing"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestRegistrationService_GuardContention(t *testing.T) {
	events := newStubEventRepo(&domain.Event{ID: "e1", Date: day("2026-11-01"), IsOpen: true})
	guard := &stubGuard{held: map[string]bool{"s1:e1": true}}
	svc := NewRegistrationService(events, &stubRegRepo{events: events}, guard, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "s1", "e1"); !errors.Is(err, domain.ErrRegistrationBusy) {
		t.Fatalf("expected ErrRegistrationBusy, got %v", err)
	}
}

func TestRegistrationService_GuardFailureFailsOpen(t *testing.T) {
	events := newStubEventRepo(&domain.Event{ID: "e1", Date: day("2026-11-01"), IsOpen: true})
	guard := &stubGuard{acquireErr: errStoreDown}
	svc := NewRegistrationService(events, &stubRegRepo{events: events}, guard, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "s1", "e1"); err != nil {
		t.Fatalf("expected registration despite guard failure, got %v", err)
	}
	if guard.releases != 0 {
		t.Fatalf("expected no release without acquire, got %d", guard.releases)
	}
}

func TestRegistrationService_RequiresStudent(t *testing.T) {
	svc, _, _ := newLedger()

	if _, err := svc.ListAvailable(context.Background(), ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
