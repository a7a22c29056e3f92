// Package metrics defines and registers all custom Prometheus metrics for the
// event hub API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import
// through promauto, and served by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventhub"

// ── Catalog metrics ───────────────────────────────────────────────────────────

// EventsCreatedTotal counts events added to the catalog.
// Label:
//   - open: "true" or "false", the is_open flag at creation
var EventsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created, by initial open flag.",
	},
	[]string{"open"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "created", "duplicate", "closed", "busy" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Reminder notification metrics ─────────────────────────────────────────────

// RemindersNotifiedTotal counts reminders handed to the notifier.
// Label:
//   - result: "ok" or "error"
var RemindersNotifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_notified_total",
		Help:      "Total number of due reminders processed by the dispatcher.",
	},
	[]string{"result"},
)

// NotifyDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (already delivered, skipped) or "miss" (new, delivered)
var NotifyDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_dedup_total",
		Help:      "Total number of reminder deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// NotifyQueueDepth tracks the number of reminders waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of reminders pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotifyDuration measures how long a single reminder takes to process.
// Label:
//   - result: "ok" or "error"
var NotifyDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notify_duration_seconds",
		Help:      "Duration of reminder processing from dequeue to delivery.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Assistant metrics ─────────────────────────────────────────────────────────

// AssistantRequestsTotal counts calls to the text-generation model.
// Labels:
//   - model: the configured model name
//   - result: "ok", "empty" or "error"
var AssistantRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assistant_requests_total",
		Help:      "Total number of text-generation requests, by model and result.",
	},
	[]string{"model", "result"},
)

// AssistantLatency measures text-generation round trips.
var AssistantLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "assistant_latency_seconds",
		Help:      "Latency of text-generation requests.",
		Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16, 32},
	},
	[]string{"model"},
)
