package domain

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("access forbidden")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEventNotFound = errors.New("event not found")
	ErrEventClosed   = errors.New("event is not open for registration")

	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrRegistrationBusy  = errors.New("registration already in progress")

	ErrReminderNotFound = errors.New("reminder not found")

	// ErrAssistantUnavailable is returned by drafting calls when the text
	// generator fails or returns nothing.
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)
