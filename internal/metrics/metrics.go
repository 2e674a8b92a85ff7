package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "statement_analyzer"

// Outcome labels for analyses_total that are not ServiceError kinds.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
)

type Metrics struct {
	registry *prometheus.Registry

	analyses           *prometheus.CounterVec
	extractionDuration *prometheus.HistogramVec
	completionDuration *prometheus.HistogramVec
	completionFailures *prometheus.CounterVec
	transactionsParsed prometheus.Counter
	parseWarnings      prometheus.Counter
	cleanupFailures    prometheus.Counter
	uploadBytes        prometheus.Histogram
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Default returns the process-wide instance served on /metrics.
func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Statement analyses by profile and outcome.",
		}, []string{"profile", "outcome"}),
		extractionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pdf_extraction_duration_seconds",
			Help:      "Time spent extracting text from uploaded PDFs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"engine"}),
		completionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_duration_seconds",
			Help:      "Latency of completion service calls.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"call"}),
		completionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_failures_total",
			Help:      "Failed completion service calls.",
		}, []string{"call"}),
		transactionsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_parsed_total",
			Help:      "Transaction records parsed from model replies.",
		}),
		parseWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transaction_parse_warnings_total",
			Help:      "Model replies that held no decodable transaction array.",
		}),
		cleanupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "temp_cleanup_failures_total",
			Help:      "Temporary upload files that could not be removed.",
		}),
		uploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_size_bytes",
			Help:      "Size of accepted uploads.",
			Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 6),
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.analyses,
		m.extractionDuration,
		m.completionDuration,
		m.completionFailures,
		m.transactionsParsed,
		m.parseWarnings,
		m.cleanupFailures,
		m.uploadBytes,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordAnalysis(profile, outcome string) {
	m.analyses.WithLabelValues(profile, outcome).Inc()
}

func (m *Metrics) ObserveExtraction(engine string, d time.Duration) {
	m.extractionDuration.WithLabelValues(engine).Observe(d.Seconds())
}

func (m *Metrics) ObserveCompletion(call string, d time.Duration, failed bool) {
	m.completionDuration.WithLabelValues(call).Observe(d.Seconds())
	if failed {
		m.completionFailures.WithLabelValues(call).Inc()
	}
}

func (m *Metrics) RecordTransactions(n int) {
	m.transactionsParsed.Add(float64(n))
}

func (m *Metrics) RecordParseWarning() {
	m.parseWarnings.Inc()
}

func (m *Metrics) RecordCleanupFailure() {
	m.cleanupFailures.Inc()
}

func (m *Metrics) ObserveUpload(size int64) {
	m.uploadBytes.Observe(float64(size))
}
