// Package metrics holds the Prometheus collectors of the server. Collectors
// live on their own registry so tests can build as many as they like.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quizcore"

type Metrics struct {
	registry *prometheus.Registry

	answers           *prometheus.CounterVec
	sessionsStarted   *prometheus.CounterVec
	sessionsCompleted *prometheus.CounterVec
	activeSessions    prometheus.Gauge
	syncRuns          *prometheus.CounterVec
	syncSubjects      *prometheus.CounterVec
	syncSkipped       prometheus.Counter
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		answers: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "answers_total",
				Help:      "Answers recorded, by session mode and correctness",
			},
			[]string{"mode", "correct"},
		),
		sessionsStarted: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_started_total",
				Help:      "Stage sessions started, by mode",
			},
			[]string{"mode"},
		),
		sessionsCompleted: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_completed_total",
				Help:      "Stage sessions that reached the last question, by mode",
			},
			[]string{"mode"},
		),
		activeSessions: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Stage sessions held in memory",
			},
		),
		syncRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_sync_runs_total",
				Help:      "Catalog synchronizations, by outcome",
			},
			[]string{"status"},
		),
		syncSubjects: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_sync_subjects_total",
				Help:      "Subjects touched by catalog synchronization, by action",
			},
			[]string{"action"},
		),
		syncSkipped: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_sync_skipped_questions_total",
				Help:      "Malformed question records skipped during sync",
			},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests, by method and status",
			},
			[]string{"method", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) AnswerRecorded(mode string, correct bool) {
	m.answers.WithLabelValues(mode, strconv.FormatBool(correct)).Inc()
}

func (m *Metrics) SessionStarted(mode string) {
	m.sessionsStarted.WithLabelValues(mode).Inc()
	m.activeSessions.Inc()
}

func (m *Metrics) SessionCompleted(mode string) {
	m.sessionsCompleted.WithLabelValues(mode).Inc()
}

func (m *Metrics) SessionEnded() {
	m.activeSessions.Dec()
}

// SyncFinished records one synchronization run. Counts are ignored when
// err is non-nil.
func (m *Metrics) SyncFinished(added, removed, unchanged, skipped int, err error) {
	if err != nil {
		m.syncRuns.WithLabelValues("error").Inc()
		return
	}
	m.syncRuns.WithLabelValues("ok").Inc()
	m.syncSubjects.WithLabelValues("added").Add(float64(added))
	m.syncSubjects.WithLabelValues("removed").Add(float64(removed))
	m.syncSubjects.WithLabelValues("unchanged").Add(float64(unchanged))
	m.syncSkipped.Add(float64(skipped))
}

func (m *Metrics) ObserveHTTP(method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
