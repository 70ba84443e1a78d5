// Package metrics exports Prometheus metrics for the lead pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all pipeline Prometheus metrics
type Metrics struct {
	// Discovery metrics
	CandidatesDiscovered *prometheus.CounterVec
	CandidatesGated      *prometheus.CounterVec
	CandidatesDuplicate  *prometheus.CounterVec

	// Classification metrics
	CandidatesClassified   prometheus.Counter
	CandidatesQualified    prometheus.Counter
	CandidatesRejected     *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram
	ScoreDistribution      prometheus.Histogram

	// Enrichment metrics
	EnrichmentAttempts prometheus.Counter
	EnrichmentHits     *prometheus.CounterVec
	EnrichmentMisses   prometheus.Counter
	EnrichmentDuration prometheus.Histogram

	// Provider metrics
	ProviderRequests  *prometheus.CounterVec
	ProviderRateLimit *prometheus.CounterVec

	// Worker metrics
	ActiveWorkers prometheus.Gauge
	QueueDepth    prometheus.Gauge
}

// New initializes and registers all pipeline metrics.
func New() *Metrics {
	m := &Metrics{}
	initDiscoveryMetrics(m)
	initClassificationMetrics(m)
	initEnrichmentMetrics(m)
	initProviderMetrics(m)
	initWorkerMetrics(m)
	return m
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func initDiscoveryMetrics(m *Metrics) {
	m.CandidatesDiscovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_candidates_discovered_total",
		Help: "Total new candidates emitted by discovery",
	}, []string{"source"})

	m.CandidatesGated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_candidates_gated_total",
		Help: "Total feed posts dropped by the engagement gate",
	}, []string{"source"})

	m.CandidatesDuplicate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_candidates_duplicate_total",
		Help: "Total identifiers skipped as already seen",
	}, []string{"source"})
}

func initClassificationMetrics(m *Metrics) {
	m.CandidatesClassified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadscout_candidates_classified_total",
		Help: "Total candidates scored against the persona",
	})

	m.CandidatesQualified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadscout_candidates_qualified_total",
		Help: "Total candidates that met the score threshold",
	})

	m.CandidatesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_candidates_rejected_total",
		Help: "Total candidates rejected, by rejection kind",
	}, []string{"kind"})

	m.ClassificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadscout_classification_duration_seconds",
		Help:    "Time to score a single candidate",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	m.ScoreDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadscout_candidate_score",
		Help:    "Distribution of candidate total scores",
		Buckets: []float64{-100, -50, -25, 0, 15, 30, 45, 60, 80, 100, 150},
	})
}

func initEnrichmentMetrics(m *Metrics) {
	m.EnrichmentAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadscout_enrichment_attempts_total",
		Help: "Total contact waterfall passes started",
	})

	m.EnrichmentHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_enrichment_hits_total",
		Help: "Total emails found, by waterfall tier",
	}, []string{"tier"})

	m.EnrichmentMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadscout_enrichment_misses_total",
		Help: "Total waterfall passes where every tier missed",
	})

	m.EnrichmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadscout_enrichment_duration_seconds",
		Help:    "Time for a full contact waterfall pass",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	})
}

func initProviderMetrics(m *Metrics) {
	m.ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_provider_requests_total",
		Help: "Total outbound provider requests",
	}, []string{"provider", "outcome"})

	m.ProviderRateLimit = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadscout_provider_rate_limited_total",
		Help: "Total 429 responses per provider",
	}, []string{"provider"})
}

func initWorkerMetrics(m *Metrics) {
	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "leadscout_active_workers",
		Help: "Currently active pipeline worker goroutines",
	})

	m.QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "leadscout_queue_depth",
		Help: "Candidates waiting in the pipeline queue",
	})
}

// RecordClassification records the outcome and duration of one scoring pass.
func (m *Metrics) RecordClassification(score int, qualified bool, duration time.Duration) {
	m.CandidatesClassified.Inc()
	m.ClassificationDuration.Observe(duration.Seconds())
	m.ScoreDistribution.Observe(float64(score))
	if qualified {
		m.CandidatesQualified.Inc()
	}
}

// RecordRejection counts a rejection by kind (hard_filter or low_score).
func (m *Metrics) RecordRejection(kind string) {
	m.CandidatesRejected.WithLabelValues(kind).Inc()
}

// RecordDiscovery counts one discovery source pass.
func (m *Metrics) RecordDiscovery(source string, emitted, gated, duplicates int) {
	m.CandidatesDiscovered.WithLabelValues(source).Add(float64(emitted))
	m.CandidatesGated.WithLabelValues(source).Add(float64(gated))
	m.CandidatesDuplicate.WithLabelValues(source).Add(float64(duplicates))
}

// RecordProviderRequest counts one outbound provider call by outcome.
func (m *Metrics) RecordProviderRequest(provider, outcome string) {
	m.ProviderRequests.WithLabelValues(provider, outcome).Inc()
}

// RecordRateLimit counts a 429 response from a provider.
func (m *Metrics) RecordRateLimit(provider string) {
	m.ProviderRateLimit.WithLabelValues(provider).Inc()
}

// RecordEnrichment records one waterfall pass.
func (m *Metrics) RecordEnrichment(tier string, found bool, duration time.Duration) {
	m.EnrichmentAttempts.Inc()
	m.EnrichmentDuration.Observe(duration.Seconds())
	if found {
		m.EnrichmentHits.WithLabelValues(tier).Inc()
	} else {
		m.EnrichmentMisses.Inc()
	}
}
