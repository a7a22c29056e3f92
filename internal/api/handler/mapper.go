package handler

import (
	"time"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format(domain.DateLayout),
		Location:    e.Location,
		IsOpen:      e.IsOpen,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func toEventList(events []*domain.Event) eventListResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return eventListResponse{Events: out, Count: len(out)}
}

func toReminderResponse(r *domain.Reminder, loc *time.Location) reminderResponse {
	return reminderResponse{
		ID:            r.ID,
		Title:         r.Title,
		Note:          r.Note,
		RemindAt:      r.RemindAt.UTC(),
		RemindAtLocal: domain.FormatLocalDateTime(r.RemindAt, loc),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toParticipation(rows []domain.EventParticipation) participationResponse {
	out := make([]participationRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, participationRow{
			EventID:      row.EventID,
			Title:        row.Title,
			Date:         row.Date.Format(domain.DateLayout),
			Participants: row.Participants,
		})
	}
	return participationResponse{Events: out}
}
