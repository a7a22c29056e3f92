package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

func session(id string) *domain.Session {
	return &domain.Session{Principal: domain.Principal{ID: id, Email: id + "@school.edu"}}
}

func TestRoleResolver_NilSessionIsGuest(t *testing.T) {
	r := NewRoleResolver(newStubUserRepo(), nil, zerolog.Nop())

	id := r.Resolve(context.Background(), nil)
	if id.Role != domain.RoleGuest {
		t.Fatalf("expected guest, got %s", id.Role)
	}
	if id.Principal != nil {
		t.Fatalf("expected no principal, got %+v", id.Principal)
	}
}

func TestRoleResolver_ProfileRole(t *testing.T) {
	users := newStubUserRepo()
	users.users["u1"] = &domain.User{ID: "u1", Role: domain.RoleAdmin}
	r := NewRoleResolver(users, nil, zerolog.Nop())

	id := r.Resolve(context.Background(), session("u1"))
	if id.Role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %s", id.Role)
	}
	if id.Principal == nil || id.Principal.ID != "u1" {
		t.Fatalf("unexpected principal: %+v", id.Principal)
	}

	r.Resolve(context.Background(), session("u1"))
	if n := users.lookups(); n != 1 {
		t.Fatalf("expected cached role after first lookup, got %d lookups", n)
	}
}

func TestRoleResolver_MissingProfileIsStudent(t *testing.T) {
	r := NewRoleResolver(newStubUserRepo(), nil, zerolog.Nop())

	if id := r.Resolve(context.Background(), session("ghost")); id.Role != domain.RoleStudent {
		t.Fatalf("expected student, got %s", id.Role)
	}
}

func TestRoleResolver_LookupErrorIsStudentAndNotCached(t *testing.T) {
	users := newStubUserRepo()
	users.findErr = errStoreDown
	users.users["u2"] = &domain.User{ID: "u2", Role: domain.RoleTeacher}
	r := NewRoleResolver(users, nil, zerolog.Nop())

	if id := r.Resolve(context.Background(), session("u2")); id.Role != domain.RoleStudent {
		t.Fatalf("expected student fallback, got %s", id.Role)
	}

	users.mu.Lock()
	users.findErr = nil
	users.mu.Unlock()

	if id := r.Resolve(context.Background(), session("u2")); id.Role != domain.RoleTeacher {
		t.Fatalf("expected teacher once the store recovers, got %s", id.Role)
	}
}

func TestRoleResolver_RefreshesOnSessionChange(t *testing.T) {
	users := newStubUserRepo()
	users.users["u3"] = &domain.User{ID: "u3", Role: domain.RoleStudent}
	hub := NewSessionHub()
	r := NewRoleResolver(users, hub, zerolog.Nop())
	defer r.Close()

	if id := r.Resolve(context.Background(), session("u3")); id.Role != domain.RoleStudent {
		t.Fatalf("expected student, got %s", id.Role)
	}

	users.mu.Lock()
	users.users["u3"].Role = domain.RoleTeacher
	users.mu.Unlock()

	hub.Publish(domain.SessionChange{Kind: domain.SessionSignedIn, Principal: domain.Principal{ID: "u3"}})

	if id := r.Resolve(context.Background(), session("u3")); id.Role != domain.RoleTeacher {
		t.Fatalf("expected teacher after sign-in refresh, got %s", id.Role)
	}
}

func TestSessionHub_Unsubscribe(t *testing.T) {
	hub := NewSessionHub()
	var calls int
	unsubscribe := hub.Subscribe(func(domain.SessionChange) { calls++ })

	hub.Publish(domain.SessionChange{Kind: domain.SessionSignedOut})
	unsubscribe()
	unsubscribe()
	hub.Publish(domain.SessionChange{Kind: domain.SessionSignedOut})

	if calls != 1 {
		t.Fatalf("expected 1 delivery, got %d", calls)
	}
}
