// Package metrics defines and registers all custom Prometheus metrics for the
// attendance service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on /metrics by the router.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "attendance"

// ── Scan metrics ──────────────────────────────────────────────────────────────

// ScansTotal counts successful scans.
// Label:
//   - kind: "time_in" or "time_out"
var ScansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_total",
		Help:      "Total number of scans recorded, by resulting ledger action.",
	},
	[]string{"kind"},
)

// ScanErrorsTotal counts rejected or failed scans.
// Label:
//   - reason: "malformed", "unknown_identifier", "in_progress", "conflict", "internal"
var ScanErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_errors_total",
		Help:      "Total number of scans that did not write to the ledger.",
	},
	[]string{"reason"},
)

// ── Sync metrics ──────────────────────────────────────────────────────────────

// SyncEventsTotal counts ledger sync deliveries.
// Label:
//   - outcome: "published", "failed" or "dropped"
var SyncEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_events_total",
		Help:      "Total number of ledger events handed to the sync dispatcher, by outcome.",
	},
	[]string{"outcome"},
)

// ObserveSyncOutcome is the dispatcher outcome hook.
func ObserveSyncOutcome(outcome string) {
	SyncEventsTotal.WithLabelValues(outcome).Inc()
}

var queueDepthOnce sync.Once

// RegisterSyncQueueDepth exposes the dispatcher backlog as a gauge. Only the
// first call registers; later calls are ignored.
func RegisterSyncQueueDepth(pending func() int) {
	queueDepthOnce.Do(func() {
		promauto.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sync_queue_depth",
				Help:      "Current number of ledger events waiting in the sync dispatcher.",
			},
			func() float64 { return float64(pending()) },
		)
	})
}

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportDuration measures how long reads of the ledger take.
// Label:
//   - view: "time_log", "report" or "export"
var ReportDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_duration_seconds",
		Help:      "Duration of time-log and report requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"view"},
)

// ExportsTotal counts report downloads.
// Label:
//   - format: "csv", "xlsx" or "pdf"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_exports_total",
		Help:      "Total number of report exports, by file format.",
	},
	[]string{"format"},
)

// AccessDeniedTotal counts requests rejected by the role policy.
var AccessDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by the authorization policy.",
	},
)
