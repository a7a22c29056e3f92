package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

// RegistrationService is the registration ledger.
type RegistrationService struct {
	events ports.EventRepository
	regs   ports.RegistrationRepository
	guard  ports.RegistrationGuard // optional
	log    zerolog.Logger
}

func NewRegistrationService(
	events ports.EventRepository,
	regs ports.RegistrationRepository,
	guard ports.RegistrationGuard,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{events: events, regs: regs, guard: guard, log: log}
}

// ListAvailable returns the open events the student has not registered for,
// ordered by date. Stores that support an anti-join answer it in one query;
// otherwise both sides are fetched concurrently and diffed here.
func (s *RegistrationService) ListAvailable(ctx context.Context, studentID string) ([]*domain.Event, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: student id is required", domain.ErrValidation)
	}

	if q, ok := s.regs.(ports.AvailableEventsQuerier); ok {
		events, err := q.ListAvailableEvents(ctx, studentID)
		if err != nil {
			return nil, fmt.Errorf("list available events: %w", err)
		}
		return events, nil
	}

	var (
		open       []*domain.Event
		registered []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		open, err = s.events.List(gctx, ports.EventFilter{OpenOnly: true})
		return err
	})
	g.Go(func() error {
		var err error
		registered, err = s.regs.ListEventIDs(gctx, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list available events: %w", err)
	}

	return excludeEvents(open, registered), nil
}

func excludeEvents(events []*domain.Event, ids []string) []*domain.Event {
	skip := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		skip[id] = struct{}{}
	}
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if _, ok := skip[e.ID]; !ok {
			out = append(out, e)
		}
	}
	return out
}

func (s *RegistrationService) ListRegistered(ctx context.Context, studentID string) ([]*domain.Event, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: student id is required", domain.ErrValidation)
	}
	events, err := s.regs.ListRegisteredEvents(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list registered events: %w", err)
	}
	return events, nil
}

// Register links the student to an open event exactly once.
func (s *RegistrationService) Register(ctx context.Context, studentID, eventID string) (*domain.Registration, error) {
	if studentID == "" || eventID == "" {
		return nil, fmt.Errorf("%w: student id and event id are required", domain.ErrValidation)
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if !event.IsOpen {
		return nil, domain.ErrEventClosed
	}

	if s.guard != nil {
		acquired, err := s.guard.Acquire(ctx, studentID, eventID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("student_id", studentID).Str("event_id", eventID).Msg("registration guard unavailable, continuing")
		case !acquired:
			return nil, domain.ErrRegistrationBusy
		default:
			defer func() {
				if err := s.guard.Release(context.WithoutCancel(ctx), studentID, eventID); err != nil {
					s.log.Warn().Err(err).Str("student_id", studentID).Msg("failed to release registration guard")
				}
			}()
		}
	}

	exists, err := s.regs.Exists(ctx, studentID, eventID)
	if err != nil {
		return nil, fmt.Errorf("register: check existing: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyRegistered
	}

	reg := &domain.Registration{
		ID:        uuid.NewString(),
		StudentID: studentID,
		EventID:   eventID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.regs.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("student_id", studentID).Str("event_id", eventID).Msg("student registered")
	return reg, nil
}
