// Package metrics defines and registers all custom Prometheus metrics of the
// admin dashboard: the resource client on one side and the reference API on
// the other. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin"

// ── Client metrics ────────────────────────────────────────────────────────────

// ClientRequestsTotal counts resource calls made by the dashboard client.
// Labels:
//   - resource:  "users" or "products"
//   - operation: "list", "create", "update", "delete"
//   - outcome:   "ok", "transport", "auth", "validation", "decode", "failed"
var ClientRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of resource requests issued by the dashboard client.",
	},
	[]string{"resource", "operation", "outcome"},
)

// ClientRequestDuration measures the round trip of a single resource call.
var ClientRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Duration of resource requests issued by the dashboard client.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource", "operation"},
)

// ── Reference API metrics ─────────────────────────────────────────────────────

// MutationsTotal counts successful writes handled by the reference API.
// Labels:
//   - resource:  "users" or "products"
//   - operation: "create", "update", "delete"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "mutations_total",
		Help:      "Total number of successful create/update/delete operations, by resource.",
	},
	[]string{"resource", "operation"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ImageBytesTotal sums the size of uploaded product images.
var ImageBytesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "product_image_bytes_total",
		Help:      "Total bytes of product images received.",
	},
)
