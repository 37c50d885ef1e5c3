package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignaturesProcessed tracks signatures examined per wallet.
	SignaturesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchwatch_signatures_processed_total",
			Help: "Total number of transaction signatures examined",
		},
		[]string{"wallet"},
	)

	// LaunchesDetected tracks positive verdicts by matched rule.
	LaunchesDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchwatch_launches_detected_total",
			Help: "Total number of positive launch classifications",
		},
		[]string{"rule"},
	)

	// AlertsSent tracks dispatched alerts by transport path.
	AlertsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchwatch_alerts_sent_total",
			Help: "Total number of alerts dispatched",
		},
		[]string{"source"},
	)

	// AlertsDeduped tracks detections suppressed by the ledger.
	AlertsDeduped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchwatch_alerts_deduped_total",
			Help: "Total number of detections suppressed as duplicates",
		},
		[]string{"source"},
	)

	// AlertSendErrors tracks notifier delivery failures.
	AlertSendErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "launchwatch_alert_send_errors_total",
			Help: "Total number of failed alert deliveries",
		},
	)

	// RPCCalls tracks JSON-RPC calls per method.
	RPCCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchwatch_rpc_calls_total",
			Help: "Total number of RPC calls",
		},
		[]string{"method"},
	)

	// RPCErrors tracks JSON-RPC failures per method.
	RPCErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchwatch_rpc_errors_total",
			Help: "Total number of RPC errors",
		},
		[]string{"method"},
	)

	// MetadataLookups tracks resolver-chain outcomes per provider.
	MetadataLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchwatch_metadata_lookups_total",
			Help: "Total number of token metadata lookups",
		},
		[]string{"provider", "outcome"},
	)

	// LedgerPruned tracks entries removed by the retention sweep.
	LedgerPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "launchwatch_ledger_pruned_total",
			Help: "Total number of dedup entries removed by pruning",
		},
	)

	// CycleDuration tracks full poll-cycle latency.
	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "launchwatch_cycle_duration_seconds",
			Help:    "Poll cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// WebhookEvents tracks push events received by outcome.
	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "launchwatch_webhook_events_total",
			Help: "Total number of webhook events received",
		},
		[]string{"outcome"},
	)
)
