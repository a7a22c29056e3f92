package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

const (
	NoEventsText         = "There are no upcoming events at the moment."
	AssistantErrorReply  = "Error connecting to the event assistant."
	AssistantEmptyReply  = "No response from the event assistant."
	defaultAssistantWait = 30 * time.Second
)

const chatTemplate = `You are a helpful school event assistant.

Here are the upcoming events:
%s

Conversation history:
%s

User: %s

Answer in a friendly, clear, and concise manner. Use bullet points or numbers if listing events. Do not include quotation marks in your response.`

const eventDraftTemplate = `You are helping a school staff member announce an event.

Write a short, engaging description (two to three sentences) for the following event:
Title: %s
Date: %s
Location: %s

Do not include quotation marks or a heading in your response.`

const reminderDraftTemplate = `You are helping a student write a personal reminder.

Write one or two short sentences to use as the note for this reminder:
Title: %s
When: %s

Do not include quotation marks in your response.`

// openEventLister is the slice of the catalog the assistant reads.
type openEventLister interface {
	ListOpen(ctx context.Context) ([]*domain.Event, error)
}

// AssistantConfig holds sampling and timeout settings for the assistant.
type AssistantConfig struct {
	Temperature    float32
	MaxTokens      int
	DraftMaxTokens int
	Timeout        time.Duration
}

type AssistantService struct {
	gen    ports.TextGenerator
	events openEventLister
	loc    *time.Location
	cfg    AssistantConfig
	log    zerolog.Logger
}

func NewAssistantService(gen ports.TextGenerator, events openEventLister, loc *time.Location, cfg AssistantConfig, log zerolog.Logger) *AssistantService {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}
	if cfg.DraftMaxTokens <= 0 {
		cfg.DraftMaxTokens = 150
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultAssistantWait
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AssistantService{gen: gen, events: events, loc: loc, cfg: cfg, log: log}
}

// Answer replies to message in the context of the open events and the prior
// conversation. Failures are reported to the user as a fixed reply.
func (s *AssistantService) Answer(ctx context.Context, history []ports.ChatTurn, message string) string {
	events, err := s.events.ListOpen(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("assistant could not load events")
		events = nil
	}

	prompt := fmt.Sprintf(chatTemplate, formatEvents(events), formatHistory(history), strings.TrimSpace(message))

	text, err := s.generate(ctx, prompt, s.cfg.MaxTokens)
	if err != nil {
		s.log.Error().Err(err).Msg("assistant chat failed")
		return AssistantErrorReply
	}
	if text == "" {
		return AssistantEmptyReply
	}
	return text
}

func (s *AssistantService) DraftEventDescription(ctx context.Context, title, date, location string) (string, error) {
	title, date, location = strings.TrimSpace(title), strings.TrimSpace(date), strings.TrimSpace(location)
	if title == "" || date == "" || location == "" {
		return "", fmt.Errorf("%w: title, date and location are required", domain.ErrValidation)
	}
	return s.draft(ctx, fmt.Sprintf(eventDraftTemplate, title, date, location))
}

func (s *AssistantService) DraftReminderNote(ctx context.Context, title, remindAtLocal string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(remindAtLocal) == "" {
		return "", fmt.Errorf("%w: title and remind_at are required", domain.ErrValidation)
	}
	at, err := domain.ParseLocalDateTime(remindAtLocal, s.loc)
	if err != nil {
		return "", err
	}
	when := at.In(s.loc).Format("Monday, January 2, 2006 at 3:04 PM")
	return s.draft(ctx, fmt.Sprintf(reminderDraftTemplate, title, when))
}

func (s *AssistantService) draft(ctx context.Context, prompt string) (string, error) {
	text, err := s.generate(ctx, prompt, s.cfg.DraftMaxTokens)
	if err != nil {
		s.log.Error().Err(err).Msg("assistant draft failed")
		return "", fmt.Errorf("%w: %v", domain.ErrAssistantUnavailable, err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty response", domain.ErrAssistantUnavailable)
	}
	return text, nil
}

func (s *AssistantService) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	text, err := s.gen.Generate(ctx, prompt, ports.GenerationParams{
		Temperature: s.cfg.Temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	return cleanReply(text), nil
}

var quoteStripper = strings.NewReplacer(`"`, "", "“", "", "”", "")

func cleanReply(text string) string {
	return strings.TrimSpace(quoteStripper.Replace(text))
}

func formatEvents(events []*domain.Event) string {
	if len(events) == 0 {
		return NoEventsText
	}
	lines := make([]string, 0, len(events))
	for i, e := range events {
		lines = append(lines, fmt.Sprintf("%d. %s - %s at %s", i+1, e.Title, e.Date.Format(domain.DateLayout), e.Location))
	}
	return strings.Join(lines, "\n")
}

func formatHistory(history []ports.ChatTurn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		speaker := "User"
		if turn.Role == "assistant" {
			speaker = "Assistant"
		}
		lines = append(lines, speaker+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}
