package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/api/metrics"
	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

var ErrQueueFull = errors.New("dispatcher queue full")

// Dispatcher routes due reminders to a fixed set of workers using consistent
// hashing on the owner, so one user's reminders are delivered in order.
type Dispatcher struct {
	workers []chan *domain.Reminder
	service ports.NotifyService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotifyService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.Reminder, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.Reminder, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a reminder to the worker responsible for its owner. It never
// blocks: a full shard returns ErrQueueFull and the next scan retries.
func (d *Dispatcher) Enqueue(ctx context.Context, r *domain.Reminder) error {
	idx := d.shardIndex(r.UserID)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case d.workers[idx] <- r:
		metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		return ErrQueueFull
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.Reminder) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotifyQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			result := "ok"
			if err := d.service.Process(ctx, r); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("reminder_id", r.ID).
					Int("worker_id", id).
					Msg("reminder processing failed")
			}
			metrics.RemindersNotifiedTotal.WithLabelValues(result).Inc()
			metrics.NotifyDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}
