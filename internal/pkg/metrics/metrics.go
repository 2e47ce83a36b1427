// Package metrics defines and registers all custom Prometheus metrics for the
// car booking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import and
// exposed by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "car_booking"

// ── Account metrics ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - operation: "signup" or "login"
//   - result: "ok" or the error kind (e.g. "Conflict", "Unauthorized")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// AuthRejectionsTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "header_missing", "token_missing", "token_invalid", "user_gone"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authentication gate.",
	},
	[]string{"reason"},
)

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingOperationsTotal counts booking use-case invocations.
// Labels:
//   - operation: "create", "get", "summary", "update", "delete"
//   - result: "ok" or the error kind
var BookingOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_operations_total",
		Help:      "Total number of booking operations, by operation and outcome.",
	},
	[]string{"operation", "result"},
)

// BookingCacheTotal counts booking cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var BookingCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_cache_total",
		Help:      "Total number of booking cache lookups, labelled by result.",
	},
	[]string{"result"},
)
