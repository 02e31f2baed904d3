package qstab

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	measurementDeterministic = "deterministic"
	measurementRandom        = "random"

	cacheHitNode        = "node"
	cacheHitDeterminism = "determinism"
)

/*
Metrics counts the work done by the tableau engines. The counters are
prometheus collectors so a host process can export them; the latency fields
are kept locally the same way the pool metrics always were.
*/
type Metrics struct {
	mu sync.RWMutex

	Measurements    *prometheus.CounterVec
	Rowsums         prometheus.Counter
	TreeNodes       prometheus.Counter
	Branches        prometheus.Counter
	Leaves          prometheus.Counter
	CacheStores     prometheus.Counter
	CacheHits       *prometheus.CounterVec
	InvariantErrors prometheus.Counter
	OutcomeCount    prometheus.Histogram

	EnumerationCount        int64
	TotalEnumerationTime    time.Duration
	AverageEnumerationTime  time.Duration
	LastEnumerationDuration time.Duration

	registerErr error
}

/*
NewMetrics builds the collectors and registers them with reg. A nil reg
keeps them unregistered. Registering twice with the same registry reuses the
collectors that are already there. Any other registration failure leaves
the collector unregistered and is reported by Err.
*/
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{}

	m.Measurements = register(reg, m, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qstab_measurements_total",
		Help: "Single-qubit measurements by outcome path",
	}, []string{"path"}))
	m.Rowsums = register(reg, m, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qstab_rowsums_total",
		Help: "Aaronson-Gottesman row multiplications",
	}))
	m.TreeNodes = register(reg, m, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qstab_probability_nodes_total",
		Help: "Nodes visited by the probability search",
	}))
	m.Branches = register(reg, m, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qstab_probability_branches_total",
		Help: "Branch points expanded by the probability search",
	}))
	m.Leaves = register(reg, m, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qstab_probability_leaves_total",
		Help: "Fully resolved outcomes emitted by the probability search",
	}))
	m.CacheStores = register(reg, m, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qstab_branch_cache_stores_total",
		Help: "Partial branches snapshotted into the branch cache",
	}))
	m.CacheHits = register(reg, m, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qstab_branch_cache_hits_total",
		Help: "Branch cache hits by kind",
	}, []string{"kind"}))
	m.InvariantErrors = register(reg, m, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qstab_invariant_errors_total",
		Help: "Tableau invariant violations surfaced to callers",
	}))
	m.OutcomeCount = register(reg, m, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "qstab_enumeration_outcomes",
		Help:    "Entries returned per probability enumeration",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}))

	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, m *Metrics, collector T) T {
	if reg == nil {
		return collector
	}

	err := reg.Register(collector)
	if err == nil {
		return collector
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing
		}
	}

	m.registerErr = errors.Join(m.registerErr, fmt.Errorf("register metrics: %w", err))

	return collector
}

// Err returns the registration failures collected by NewMetrics, if any.
// The affected collectors still count but are not exported by the registry.
func (m *Metrics) Err() error {
	return m.registerErr
}

func (m *Metrics) measurement(path string) { m.Measurements.WithLabelValues(path).Inc() }
func (m *Metrics) rowsum()                 { m.Rowsums.Inc() }
func (m *Metrics) treeNode()               { m.TreeNodes.Inc() }
func (m *Metrics) branch()                 { m.Branches.Inc() }
func (m *Metrics) leaf()                   { m.Leaves.Inc() }
func (m *Metrics) cacheStore()             { m.CacheStores.Inc() }
func (m *Metrics) cacheHit(kind string)    { m.CacheHits.WithLabelValues(kind).Inc() }
func (m *Metrics) invariantError()         { m.InvariantErrors.Inc() }

func (m *Metrics) enumeration(outcomes int, duration time.Duration) {
	m.OutcomeCount.Observe(float64(outcomes))

	m.mu.Lock()
	defer m.mu.Unlock()

	m.EnumerationCount++
	m.TotalEnumerationTime += duration
	m.LastEnumerationDuration = duration
	m.AverageEnumerationTime = m.TotalEnumerationTime / time.Duration(m.EnumerationCount)
}

// ExportMetrics returns a flat snapshot of every counter.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"measurements_deterministic": counterValue(m.Measurements.WithLabelValues(measurementDeterministic)),
		"measurements_random":        counterValue(m.Measurements.WithLabelValues(measurementRandom)),
		"rowsums":                    counterValue(m.Rowsums),
		"tree_nodes":                 counterValue(m.TreeNodes),
		"branches":                   counterValue(m.Branches),
		"leaves":                     counterValue(m.Leaves),
		"cache_stores":               counterValue(m.CacheStores),
		"cache_hits_node":            counterValue(m.CacheHits.WithLabelValues(cacheHitNode)),
		"cache_hits_determinism":     counterValue(m.CacheHits.WithLabelValues(cacheHitDeterminism)),
		"invariant_errors":           counterValue(m.InvariantErrors),
		"enumerations":               m.EnumerationCount,
		"avg_enumeration_ms":         m.AverageEnumerationTime.Milliseconds(),
		"last_enumeration_ms":        m.LastEnumerationDuration.Milliseconds(),
	}
}

func counterValue(counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		return 0
	}

	return metric.GetCounter().GetValue()
}
