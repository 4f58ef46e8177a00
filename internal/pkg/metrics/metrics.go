// Package metrics defines and registers the custom Prometheus metrics of the
// catalog API. HTTP request metrics come from the echoprometheus middleware;
// everything here describes resource operations and their side effects.
//
// Metrics are registered with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourceOperationsTotal counts controller operations.
// Labels:
//   - resource: "product", "brand", "user"
//   - operation: "list", "create", "read", "update", "delete"
//   - outcome: "ok", "invalid", "not_found", "unauthenticated", "error"
var ResourceOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_operations_total",
		Help:      "Total number of resource operations, by resource, operation and outcome.",
	},
	[]string{"resource", "operation", "outcome"},
)

// ProductVisitsTotal counts anonymous single-product reads.
var ProductVisitsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_visits_total",
		Help:      "Total number of anonymous product views recorded.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts delivery attempts.
// Labels:
//   - driver: "slack", "amqp" or "log"
//   - result: "delivered" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification delivery attempts, by driver and result.",
	},
	[]string{"driver", "result"},
)

// NotificationDuration measures a single delivery attempt.
var NotificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification delivery attempts.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"driver"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// TokenExchangesTotal counts credential exchanges at the token endpoint.
// Label:
//   - result: "issued" or "rejected"
var TokenExchangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_exchanges_total",
		Help:      "Total number of credential exchanges, by result.",
	},
	[]string{"result"},
)
