package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPCDuration tracks the latency of admin RPCs
	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gamecodebase_rpc_duration_seconds",
			Help: "Duration of admin RPC requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
				10.0,  // 10s
			},
		},
		[]string{"procedure", "status"}, // status is the connect code or "ok"
	)

	// PipelineRuns counts snapshot build+publish runs
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamecodebase_pipeline_runs_total",
			Help: "Snapshot pipeline runs by result",
		},
		[]string{"result"}, // published, noop or failed
	)

	// PublishDuration tracks how long a build+publish run takes
	PublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gamecodebase_publish_duration_seconds",
			Help:    "Duration of snapshot build and publish in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms .. ~10s
		},
	)

	// RemotePushFailures counts best-effort remote pushes that failed
	RemotePushFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamecodebase_remote_push_failures_total",
			Help: "Failed artifact pushes by remote",
		},
		[]string{"remote"},
	)

	// ExportedCodes is the number of codes in the last published snapshot
	ExportedCodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gamecodebase_exported_codes",
			Help: "Codes contained in the last published snapshot",
		},
	)

	// BatchOperations counts batch calls
	BatchOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamecodebase_batch_operations_total",
			Help: "Batch operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// ReviewTransitions counts review and publish state changes
	ReviewTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamecodebase_review_transitions_total",
			Help: "Review state machine transitions by action",
		},
		[]string{"action"},
	)

	// IngestedCandidates counts candidate codes seen by ingestion
	IngestedCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamecodebase_ingested_candidates_total",
			Help: "Candidate codes by ingestion result",
		},
		[]string{"result"}, // created, duplicate or invalid
	)
)

// RecordRPCDuration records the duration of an admin RPC
func RecordRPCDuration(procedure, status string, duration float64) {
	RPCDuration.WithLabelValues(procedure, status).Observe(duration)
}

// RecordPipelineRun records the outcome and duration of a pipeline run
func RecordPipelineRun(result string, duration float64, exported int) {
	PipelineRuns.WithLabelValues(result).Inc()
	PublishDuration.Observe(duration)
	if result != "failed" {
		ExportedCodes.Set(float64(exported))
	}
}

// RecordRemotePushFailure records a failed push to the named remote
func RecordRemotePushFailure(remote string) {
	RemotePushFailures.WithLabelValues(remote).Inc()
}

// RecordBatchOperation records a batch call
func RecordBatchOperation(operation, result string) {
	BatchOperations.WithLabelValues(operation, result).Inc()
}

// RecordReviewTransition records a state machine action
func RecordReviewTransition(action string) {
	ReviewTransitions.WithLabelValues(action).Inc()
}

// RecordIngested adds n candidates with the given result
func RecordIngested(result string, n int) {
	if n > 0 {
		IngestedCandidates.WithLabelValues(result).Add(float64(n))
	}
}
