// Package metrics provides Prometheus metrics for practice sessions.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager holds the Prometheus collectors. A nil Manager records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registerer       prometheus.Registerer
	gatherer         prometheus.Gatherer

	outcomesRecorded  *prometheus.CounterVec
	levelChanges      *prometheus.CounterVec
	batchesSelected   prometheus.Counter
	batchSize         prometheus.Histogram
	storeErrors       *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	speciesLookups    *prometheus.CounterVec
}

// NewManager creates a metrics manager registered on its own registry unless WithRegistry is given.
func NewManager(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	m := &Manager{
		namespace:        "birdling",
		subsystem:        "practice",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registerer:       registry,
		gatherer:         registry,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registerer)

	m.outcomesRecorded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcomes_recorded_total",
		Help:      "Total number of recorded answers by game mode and result",
	}, []string{"mode", "result"})

	m.levelChanges = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "level_changes_total",
		Help:      "Total number of mastery level changes by direction and new level",
	}, []string{"direction", "level"})

	m.batchesSelected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_selected_total",
		Help:      "Total number of practice batches selected",
	})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_size",
		Help:      "Number of items in selected practice batches",
		Buckets:   prometheus.LinearBuckets(1, 2, 10),
	})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total number of failed store operations",
	}, []string{"operation"})

	m.operationDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "operation_duration_seconds",
		Help:      "Duration of scheduler operations in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.speciesLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "species_lookups_total",
		Help:      "Total number of species lookups by source",
	}, []string{"source"})
}

func (m *Manager) active() bool {
	return m != nil && m.enabled
}

// RecordOutcome counts one answer.
func (m *Manager) RecordOutcome(mode string, correct bool) {
	if !m.active() {
		return
	}
	result := "wrong"
	if correct {
		result = "correct"
	}
	m.outcomesRecorded.WithLabelValues(mode, result).Inc()
}

// RecordLevelChange counts promotions and resets; unchanged levels are ignored.
func (m *Manager) RecordLevelChange(previous, current int) {
	if !m.active() || previous == current {
		return
	}
	direction := "promoted"
	if current < previous {
		direction = "reset"
	}
	m.levelChanges.WithLabelValues(direction, strconv.Itoa(current)).Inc()
}

// RecordBatch counts a selected batch and observes its size.
func (m *Manager) RecordBatch(size int) {
	if !m.active() {
		return
	}
	m.batchesSelected.Inc()
	m.batchSize.Observe(float64(size))
}

func (m *Manager) RecordStoreError(operation string) {
	if !m.active() {
		return
	}
	m.storeErrors.WithLabelValues(operation).Inc()
}

// ObserveOperation records how long a scheduler operation took.
func (m *Manager) ObserveOperation(operation string, d time.Duration) {
	if !m.active() {
		return
	}
	m.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordSpeciesLookup counts a species lookup served from source ("cache", "api" or "error").
func (m *Manager) RecordSpeciesLookup(source string) {
	if !m.active() {
		return
	}
	m.speciesLookups.WithLabelValues(source).Inc()
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
