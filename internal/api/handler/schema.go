package handler

import (
	"time"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// --- auth ---

type signUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin teacher student guest"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      domain.Principal `json:"user"`
}

type meResponse struct {
	Authenticated bool              `json:"authenticated"`
	Role          string            `json:"role"`
	User          *domain.Principal `json:"user,omitempty"`
}

// --- events ---

type createEventRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date"        validate:"required,datetime=2006-01-02"`
	Location    string `json:"location"    validate:"required"`
	IsOpen      *bool  `json:"is_open"`
}

type draftDescriptionRequest struct {
	Title    string `json:"title"    validate:"required"`
	Date     string `json:"date"     validate:"required"`
	Location string `json:"location" validate:"required"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	IsOpen      bool      `json:"is_open"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type eventListResponse struct {
	Events []eventResponse `json:"events"`
	Count  int             `json:"count"`
}

type draftResponse struct {
	Text string `json:"text"`
}

// --- registrations ---

type registerRequest struct {
	EventID string `json:"event_id" validate:"required"`
}

// --- reminders ---

type reminderRequest struct {
	Title    string `json:"title"     validate:"required"`
	Note     string `json:"note"`
	RemindAt string `json:"remind_at" validate:"required"`
}

type draftNoteRequest struct {
	Title    string `json:"title"     validate:"required"`
	RemindAt string `json:"remind_at" validate:"required"`
}

type reminderResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Note          string    `json:"note,omitempty"`
	RemindAt      time.Time `json:"remind_at"`
	RemindAtLocal string    `json:"remind_at_local"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type reminderListResponse struct {
	Reminders  []reminderResponse `json:"reminders"`
	BadgeCount int                `json:"badge_count"`
	Timezone   string             `json:"timezone"`
}

// --- assistant ---

type chatTurnRequest struct {
	Role    string `json:"role"    validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string            `json:"message" validate:"required"`
	History []chatTurnRequest `json:"history" validate:"dive"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// --- admin ---

type userListResponse struct {
	Users []*domain.User `json:"users"`
	Count int            `json:"count"`
}

type participationResponse struct {
	Events []participationRow `json:"events"`
}

type participationRow struct {
	EventID      string `json:"event_id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Participants int64  `json:"participants"`
}
