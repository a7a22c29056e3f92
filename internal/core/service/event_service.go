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

// EventService is the event catalog.
type EventService struct {
	repo   ports.EventRepository
	logger zerolog.Logger
}

func NewEventService(repo ports.EventRepository, logger zerolog.Logger) *EventService {
	return &EventService{repo: repo, logger: logger}
}

func (s *EventService) ListOpen(ctx context.Context) ([]*domain.Event, error) {
	return s.list(ctx, ports.EventFilter{OpenOnly: true})
}

func (s *EventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return s.list(ctx, ports.EventFilter{})
}

func (s *EventService) ListByCreator(ctx context.Context, userID string) ([]*domain.Event, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: creator is required", domain.ErrValidation)
	}
	return s.list(ctx, ports.EventFilter{CreatedBy: userID})
}

func (s *EventService) list(ctx context.Context, filter ports.EventFilter) ([]*domain.Event, error) {
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Bool("open_only", filter.OpenOnly).Msg("failed to list events")
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Create validates the required fields before touching the store.
func (s *EventService) Create(ctx context.Context, input ports.CreateEventInput) (*domain.Event, error) {
	title := strings.TrimSpace(input.Title)
	date := strings.TrimSpace(input.Date)
	location := strings.TrimSpace(input.Location)

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if date == "" {
		missing = append(missing, "date")
	}
	if location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s required", domain.ErrValidation, strings.Join(missing, ", "))
	}

	day, err := domain.ParseEventDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be formatted as %s", domain.ErrValidation, domain.DateLayout)
	}

	isOpen := true
	if input.IsOpen != nil {
		isOpen = *input.IsOpen
	}

	event := &domain.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Date:        day,
		Location:    location,
		IsOpen:      isOpen,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("title", title).Msg("failed to create event")
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info().Str("event_id", event.ID).Str("created_by", input.CreatedBy).Msg("event created")
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: event id is required", domain.ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.Info().Str("event_id", id).Msg("event deleted")
	return nil
}
