// Package metrics exposes Prometheus counters for history persistence and
// queue derivation. All methods accept a nil receiver.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Write results.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the collectors.
type Metrics struct {
	historyWrites     *prometheus.CounterVec
	historyEvictions  *prometheus.CounterVec
	queueDerivations  *prometheus.CounterVec
	snapshotFallbacks *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		historyWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playstate_history_writes_total",
				Help: "History snapshot writes by key and result",
			},
			[]string{"key", "result"},
		),
		historyEvictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playstate_history_evictions_total",
				Help: "Entries dropped from a full history cache",
			},
			[]string{"key"},
		),
		queueDerivations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playstate_queue_derivations_total",
				Help: "Effective queue derivations by play mode",
			},
			[]string{"mode"},
		),
		snapshotFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playstate_history_snapshot_fallbacks_total",
				Help: "History snapshots that could not be restored and started empty",
			},
			[]string{"key"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.historyWrites, m.historyEvictions, m.queueDerivations, m.snapshotFallbacks)
	}
	return m
}

// HistoryWrite counts a snapshot write.
func (m *Metrics) HistoryWrite(key string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.historyWrites.WithLabelValues(key, result).Inc()
}

// HistoryEviction counts an entry dropped from a full cache.
func (m *Metrics) HistoryEviction(key string) {
	if m == nil {
		return
	}
	m.historyEvictions.WithLabelValues(key).Inc()
}

// QueueDerivation counts an effective queue derivation.
func (m *Metrics) QueueDerivation(mode string) {
	if m == nil {
		return
	}
	m.queueDerivations.WithLabelValues(mode).Inc()
}

// SnapshotFallback counts a snapshot that was replaced by an empty cache.
func (m *Metrics) SnapshotFallback(key string) {
	if m == nil {
		return
	}
	m.snapshotFallbacks.WithLabelValues(key).Inc()
}
