package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 10 * time.Second

// RegistrationGuard is a short-lived SETNX lock per (student, event) pair.
type RegistrationGuard struct {
	client *redis.Client
}

func NewRegistrationGuard(client *redis.Client) *RegistrationGuard {
	return &RegistrationGuard{client: client}
}

func (g *RegistrationGuard) Acquire(ctx context.Context, studentID, eventID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, guardKey(studentID, eventID), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("registration guard: %w", err)
	}
	return ok, nil
}

func (g *RegistrationGuard) Release(ctx context.Context, studentID, eventID string) error {
	return g.client.Del(ctx, guardKey(studentID, eventID)).Err()
}

func guardKey(studentID, eventID string) string {
	return fmt.Sprintf("register:%s:%s", studentID, eventID)
}
