package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/schoolevents/eventhub/internal/api/metrics"
)

const notifyTTL = 48 * time.Hour

// NotifyDedup remembers delivered reminder instants in Redis.
// Key format: notify:<reminder_id>:<unix_remind_at>
type NotifyDedup struct {
	client *redis.Client
}

func NewNotifyDedup(client *redis.Client) *NotifyDedup {
	return &NotifyDedup{client: client}
}

// IsDuplicate reports whether this reminder instant has already been delivered.
func (d *NotifyDedup) IsDuplicate(ctx context.Context, reminderID string, remindAt time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, notifyKey(reminderID, remindAt)).Result()
	if err != nil {
		return false, fmt.Errorf("notify dedup check: %w", err)
	}
	if n > 0 {
		metrics.NotifyDedupTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.NotifyDedupTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// Mark records delivery. The key outlives the scan window so a rescan never repeats it.
func (d *NotifyDedup) Mark(ctx context.Context, reminderID string, remindAt time.Time) error {
	return d.client.Set(ctx, notifyKey(reminderID, remindAt), "1", notifyTTL).Err()
}

func notifyKey(reminderID string, remindAt time.Time) string {
	return fmt.Sprintf("notify:%s:%d", reminderID, remindAt.Unix())
}
