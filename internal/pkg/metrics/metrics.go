// Package metrics defines and registers all custom Prometheus metrics for
// the shipment tracking API. It is the single source of truth for metric
// names, labels, and help strings; promauto registers everything with the
// default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracking"

// ── Shipment metrics ──────────────────────────────────────────────────────────

// ShipmentsCreatedTotal counts newly created shipments.
// Label:
//   - package_type: "standard", "express", "fragile", or "oversized"
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created, by package type.",
	},
	[]string{"package_type"},
)

// StatusTransitionsTotal counts administrative status transitions.
// Label:
//   - to: the canonical status the shipment was moved to
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of shipment status transitions applied, by target status.",
	},
	[]string{"to"},
)

// ShipmentsDeletedTotal counts shipment deletions.
var ShipmentsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_deleted_total",
		Help:      "Total number of shipments deleted.",
	},
)

// ── Consistency verifier metrics ──────────────────────────────────────────────

// VerifyTotal counts verification outcomes.
// Label:
//   - result: "visible", "timeout", or "cancelled"
var VerifyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verify_total",
		Help:      "Total number of read-path visibility verifications, by outcome.",
	},
	[]string{"result"},
)

// VerifyAttempts measures how many probes a single verification issued
// before resolving. The schedule is capped at 10 probes.
var VerifyAttempts = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "verify_attempts",
		Help:      "Number of read-path probes issued per verification.",
		Buckets:   []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsGeneratedTotal counts report generations.
// Label:
//   - category: "performance", "financial", "operational", "customer", "audit"
var ReportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of reports generated, by category.",
	},
	[]string{"category"},
)

// ReportDuration measures end-to-end report aggregation time.
// Label:
//   - category: the report category
var ReportDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_duration_seconds",
		Help:      "Duration of report aggregation from request to summary.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"category"},
)

// ── Audit queue metrics ───────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsWrittenTotal counts audit events persisted to the trail.
// Label:
//   - event: "Shipment Created", "Status Updated", or "Shipment Deleted"
var AuditEventsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_written_total",
		Help:      "Total number of audit events persisted, by event kind.",
	},
	[]string{"event"},
)
