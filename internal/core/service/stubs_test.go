package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

type stubCredRepo struct {
	mu    sync.Mutex
	creds map[string]*domain.Credential // by email
}

func newStubCredRepo() *stubCredRepo {
	return &stubCredRepo{creds: make(map[string]*domain.Credential)}
}

func (r *stubCredRepo) Create(_ context.Context, cred *domain.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.creds[cred.Email]; exists {
		return domain.ErrUserExists
	}
	c := *cred
	r.creds[cred.Email] = &c
	return nil
}

func (r *stubCredRepo) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.creds[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *c
	return &out, nil
}

func (r *stubCredRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, c := range r.creds {
		if c.ID == id {
			delete(r.creds, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	findErr   error
	createErr error
	finds     int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) lookups() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finds
}

type stubDenylist struct {
	revoked      map[string]time.Time
	revokedUsers map[string]time.Time
	err          error
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if d.revoked == nil {
		d.revoked = make(map[string]time.Time)
	}
	d.revoked[tokenID] = until
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := d.revoked[tokenID]
	return ok, nil
}

func (d *stubDenylist) RevokeUser(_ context.Context, userID string, until time.Time) error {
	if d.err != nil {
		return d.err
	}
	if d.revokedUsers == nil {
		d.revokedUsers = make(map[string]time.Time)
	}
	d.revokedUsers[userID] = until
	return nil
}

func (d *stubDenylist) IsUserRevoked(_ context.Context, userID string) (bool, error) {
	_, ok := d.revokedUsers[userID]
	return ok, nil
}

type stubEventRepo struct {
	mu      sync.Mutex
	events  map[string]*domain.Event
	creates int
	listErr error
}

func newStubEventRepo(events ...*domain.Event) *stubEventRepo {
	r := &stubEventRepo{events: make(map[string]*domain.Event)}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

func (r *stubEventRepo) Create(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	e := *event
	r.events[event.ID] = &e
	return nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	out := *e
	return &out, nil
}

func (r *stubEventRepo) List(_ context.Context, filter ports.EventFilter) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		if filter.OpenOnly && !e.IsOpen {
			continue
		}
		if filter.CreatedBy != "" && e.CreatedBy != filter.CreatedBy {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

type stubRegRepo struct {
	mu     sync.Mutex
	events *stubEventRepo
	rows   []*domain.Registration
}

func (r *stubRegRepo) Create(_ context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.StudentID == reg.StudentID && row.EventID == reg.EventID {
			return domain.ErrAlreadyRegistered
		}
	}
	c := *reg
	r.rows = append(r.rows, &c)
	return nil
}

func (r *stubRegRepo) Exists(_ context.Context, studentID, eventID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.StudentID == studentID && row.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRegRepo) ListEventIDs(_ context.Context, studentID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, row := range r.rows {
		if row.StudentID == studentID {
			ids = append(ids, row.EventID)
		}
	}
	return ids, nil
}

func (r *stubRegRepo) ListRegisteredEvents(ctx context.Context, studentID string) ([]*domain.Event, error) {
	ids, _ := r.ListEventIDs(ctx, studentID)
	out := make([]*domain.Event, 0, len(ids))
	for _, id := range ids {
		e, err := r.events.FindByID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *stubRegRepo) CountByEvent(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, row := range r.rows {
		counts[row.EventID]++
	}
	return counts, nil
}

type stubReminderRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Reminder
}

func newStubReminderRepo() *stubReminderRepo {
	return &stubReminderRepo{rows: make(map[string]*domain.Reminder)}
}

func (r *stubReminderRepo) Create(_ context.Context, rem *domain.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *rem
	r.rows[rem.ID] = &c
	return nil
}

func (r *stubReminderRepo) Update(_ context.Context, rem *domain.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[rem.ID]
	if !ok || cur.UserID != rem.UserID {
		return domain.ErrReminderNotFound
	}
	c := *rem
	r.rows[rem.ID] = &c
	return nil
}

func (r *stubReminderRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[id]
	if !ok || cur.UserID != userID {
		return domain.ErrReminderNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *stubReminderRepo) FindByID(_ context.Context, userID, id string) (*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[id]
	if !ok || cur.UserID != userID {
		return nil, domain.ErrReminderNotFound
	}
	c := *cur
	return &c, nil
}

// ListFrom ignores from; past rows must be dropped by the service.
func (r *stubReminderRepo) ListFrom(_ context.Context, userID string, _ time.Time) ([]*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Reminder
	for _, rem := range r.rows {
		if rem.UserID == userID {
			c := *rem
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RemindAt.Before(out[j].RemindAt) })
	return out, nil
}

func (r *stubReminderRepo) ListDue(_ context.Context, from, to time.Time) ([]*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Reminder
	for _, rem := range r.rows {
		if !rem.RemindAt.Before(from) && !rem.RemindAt.After(to) {
			c := *rem
			out = append(out, &c)
		}
	}
	return out, nil
}

var errStoreDown = errors.New("store unavailable")
