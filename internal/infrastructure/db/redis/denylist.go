package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist holds signed-out token ids and deleted user ids until the
// tokens they cover expire.
type TokenDenylist struct {
	client *redis.Client
	now    func() time.Time
}

func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client, now: time.Now}
}

func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	return d.set(ctx, denyKey(tokenID), until)
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return d.exists(ctx, denyKey(tokenID))
}

// RevokeUser rejects every token issued to userID until the given time.
func (d *TokenDenylist) RevokeUser(ctx context.Context, userID string, until time.Time) error {
	return d.set(ctx, userDenyKey(userID), until)
}

func (d *TokenDenylist) IsUserRevoked(ctx context.Context, userID string) (bool, error) {
	return d.exists(ctx, userDenyKey(userID))
}

func (d *TokenDenylist) set(ctx context.Context, key string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, key, "1", ttl).Err()
}

func (d *TokenDenylist) exists(ctx context.Context, key string) (bool, error) {
	n, err := d.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func denyKey(tokenID string) string {
	return "revoked:" + tokenID
}

func userDenyKey(userID string) string {
	return "revoked-user:" + userID
}
