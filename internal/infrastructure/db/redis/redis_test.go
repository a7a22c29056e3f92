package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNotifyKey(t *testing.T) {
	at := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	if got, want := notifyKey("r1", at), "notify:r1:1792454400"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	// Same instant in another zone maps to the same key.
	if notifyKey("r1", at.In(time.FixedZone("PHT", 8*3600))) != notifyKey("r1", at) {
		t.Fatalf("expected zone-independent key")
	}
}

func TestRedisIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("Skipping Redis integration test: REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr})
	if err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer client.Close()

	t.Run("NotifyDedup", func(t *testing.T) {
		d := NewNotifyDedup(client)
		id := uuid.NewString()
		at := time.Now().Add(time.Hour)

		dup, err := d.IsDuplicate(ctx, id, at)
		if err != nil || dup {
			t.Fatalf("expected fresh key, got dup=%v err=%v", dup, err)
		}
		if err := d.Mark(ctx, id, at); err != nil {
			t.Fatalf("Mark failed: %v", err)
		}
		if dup, _ := d.IsDuplicate(ctx, id, at); !dup {
			t.Fatalf("expected duplicate after Mark")
		}
	})

	t.Run("RegistrationGuard", func(t *testing.T) {
		g := NewRegistrationGuard(client)
		student, event := uuid.NewString(), uuid.NewString()

		if ok, err := g.Acquire(ctx, student, event); err != nil || !ok {
			t.Fatalf("expected first acquire to succeed, got ok=%v err=%v", ok, err)
		}
		if ok, _ := g.Acquire(ctx, student, event); ok {
			t.Fatalf("expected second acquire to fail")
		}
		if err := g.Release(ctx, student, event); err != nil {
			t.Fatalf("Release failed: %v", err)
		}
		if ok, _ := g.Acquire(ctx, student, event); !ok {
			t.Fatalf("expected acquire after release")
		}
	})

	t.Run("TokenDenylist", func(t *testing.T) {
		d := NewTokenDenylist(client)
		id := uuid.NewString()

		if err := d.Revoke(ctx, id, time.Now().Add(time.Minute)); err != nil {
			t.Fatalf("Revoke failed: %v", err)
		}
		if revoked, _ := d.IsRevoked(ctx, id); !revoked {
			t.Fatalf("expected token to be revoked")
		}

		expired := uuid.NewString()
		_ = d.Revoke(ctx, expired, time.Now().Add(-time.Minute))
		if revoked, _ := d.IsRevoked(ctx, expired); revoked {
			t.Fatalf("expected already-expired token to be skipped")
		}

		user := uuid.NewString()
		if err := d.RevokeUser(ctx, user, time.Now().Add(time.Minute)); err != nil {
			t.Fatalf("RevokeUser failed: %v", err)
		}
		if revoked, _ := d.IsUserRevoked(ctx, user); !revoked {
			t.Fatalf("expected user to be revoked")
		}
		// User and token ids live in separate key spaces.
		if revoked, _ := d.IsRevoked(ctx, user); revoked {
			t.Fatalf("expected user revocation not to match a token id")
		}
	})
}
