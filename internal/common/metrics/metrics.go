// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	AssistantQuestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_questions_total",
			Help: "Questions answered, by routed query type and response language",
		},
		[]string{"query_type", "language"},
	)

	// reason: greeting, count or not_found
	AssistantShortCircuits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_short_circuits_total",
			Help: "Answers produced without calling the generation capability",
		},
		[]string{"reason"},
	)

	// outcome: ok, blank, error or timeout
	AssistantGenerationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_generation_calls_total",
			Help: "Calls to the text generation capability by outcome",
		},
		[]string{"outcome"},
	)

	AssistantContextBlocks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistant_context_blocks",
			Help:    "Number of context blocks assembled per question",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 30},
		},
	)
)

const (
	ShortCircuitGreeting = "greeting"
	ShortCircuitCount    = "count"
	ShortCircuitNotFound = "not_found"

	GenerationOK      = "ok"
	GenerationBlank   = "blank"
	GenerationError   = "error"
	GenerationTimeout = "timeout"
)
