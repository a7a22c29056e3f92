package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schoolevents/eventhub/internal/api/middleware"
	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

type stubAuthService struct {
	signUpFn  func(ctx context.Context, email, password, role string) (*domain.User, error)
	signInFn  func(ctx context.Context, email, password string) (*domain.Session, error)
	signOutFn func(ctx context.Context, session *domain.Session) error
}

func (s *stubAuthService) SignUp(ctx context.Context, email, password, role string) (*domain.User, error) {
	return s.signUpFn(ctx, email, password, role)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubAuthService) SignOut(ctx context.Context, session *domain.Session) error {
	return s.signOutFn(ctx, session)
}

type stubEventService struct {
	listOpenFn      func(ctx context.Context) ([]*domain.Event, error)
	listAllFn       func(ctx context.Context) ([]*domain.Event, error)
	listByCreatorFn func(ctx context.Context, userID string) ([]*domain.Event, error)
	createFn        func(ctx context.Context, input ports.CreateEventInput) (*domain.Event, error)
	deleteFn        func(ctx context.Context, id string) error
}

func (s *stubEventService) ListOpen(ctx context.Context) ([]*domain.Event, error) {
	return s.listOpenFn(ctx)
}

func (s *stubEventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return s.listAllFn(ctx)
}

func (s *stubEventService) ListByCreator(ctx context.Context, userID string) ([]*domain.Event, error) {
	return s.listByCreatorFn(ctx, userID)
}

func (s *stubEventService) Create(ctx context.Context, input ports.CreateEventInput) (*domain.Event, error) {
	return s.createFn(ctx, input)
}

func (s *stubEventService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubRegistrationService struct {
	listAvailableFn  func(ctx context.Context, studentID string) ([]*domain.Event, error)
	listRegisteredFn func(ctx context.Context, studentID string) ([]*domain.Event, error)
	registerFn       func(ctx context.Context, studentID, eventID string) (*domain.Registration, error)
}

func (s *stubRegistrationService) ListAvailable(ctx context.Context, studentID string) ([]*domain.Event, error) {
	return s.listAvailableFn(ctx, studentID)
}

func (s *stubRegistrationService) ListRegistered(ctx context.Context, studentID string) ([]*domain.Event, error) {
	return s.listRegisteredFn(ctx, studentID)
}

func (s *stubRegistrationService) Register(ctx context.Context, studentID, eventID string) (*domain.Registration, error) {
	return s.registerFn(ctx, studentID, eventID)
}

type stubReminderService struct {
	loc            *time.Location
	listUpcomingFn func(ctx context.Context, userID string, lookahead time.Duration) (*ports.UpcomingReminders, error)
	createFn       func(ctx context.Context, userID string, in ports.ReminderInput) (*domain.Reminder, error)
	updateFn       func(ctx context.Context, userID, id string, in ports.ReminderInput) (*domain.Reminder, error)
	deleteFn       func(ctx context.Context, userID, id string) error
}

func (s *stubReminderService) ListUpcoming(ctx context.Context, userID string, lookahead time.Duration) (*ports.UpcomingReminders, error) {
	return s.listUpcomingFn(ctx, userID, lookahead)
}

func (s *stubReminderService) Create(ctx context.Context, userID string, in ports.ReminderInput) (*domain.Reminder, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubReminderService) Update(ctx context.Context, userID, id string, in ports.ReminderInput) (*domain.Reminder, error) {
	return s.updateFn(ctx, userID, id, in)
}

func (s *stubReminderService) Delete(ctx context.Context, userID, id string) error {
	return s.deleteFn(ctx, userID, id)
}

func (s *stubReminderService) Location() *time.Location {
	if s.loc == nil {
		return time.UTC
	}
	return s.loc
}

type stubAssistant struct {
	answerFn           func(ctx context.Context, history []ports.ChatTurn, message string) string
	draftDescriptionFn func(ctx context.Context, title, date, location string) (string, error)
	draftNoteFn        func(ctx context.Context, title, remindAtLocal string) (string, error)
}

func (s *stubAssistant) Answer(ctx context.Context, history []ports.ChatTurn, message string) string {
	return s.answerFn(ctx, history, message)
}

func (s *stubAssistant) DraftEventDescription(ctx context.Context, title, date, location string) (string, error) {
	return s.draftDescriptionFn(ctx, title, date, location)
}

func (s *stubAssistant) DraftReminderNote(ctx context.Context, title, remindAtLocal string) (string, error) {
	return s.draftNoteFn(ctx, title, remindAtLocal)
}

type stubAdminService struct {
	listUsersFn     func(ctx context.Context) ([]*domain.User, error)
	deleteUserFn    func(ctx context.Context, id string) error
	participationFn func(ctx context.Context) ([]domain.EventParticipation, error)
}

func (s *stubAdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listUsersFn(ctx)
}

func (s *stubAdminService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteUserFn(ctx, id)
}

func (s *stubAdminService) Participation(ctx context.Context) ([]domain.EventParticipation, error) {
	return s.participationFn(ctx)
}

// newContext builds an echo context with the JSON validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asUser sets the identity the Identity middleware would have resolved.
func asUser(c echo.Context, id, role string) {
	c.Set(middleware.ContextKeyIdentity, domain.Identity{
		Principal: &domain.Principal{ID: id, Email: id + "@school.test"},
		Role:      role,
	})
	c.Set(middleware.ContextKeyRole, role)
}

// httpCode extracts the status from an *echo.HTTPError, or fails the test.
func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}

func day(s string) time.Time {
	d, err := domain.ParseEventDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
