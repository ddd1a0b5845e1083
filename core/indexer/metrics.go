package indexer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts indexing outcomes. A nil *Metrics records nothing.
type Metrics struct {
	blocks        prometheus.Counter
	transactions  prometheus.Counter
	actions       *prometheus.CounterVec
	failures      *prometheus.CounterVec
	blockDuration prometheus.Histogram
	lastHeight    prometheus.Gauge
}

// NewMetrics registers the indexer metrics with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		blocks: factory.NewCounter(prometheus.CounterOpts{
			Name: "specy_indexer_blocks_total",
			Help: "Total number of blocks indexed",
		}),
		transactions: factory.NewCounter(prometheus.CounterOpts{
			Name: "specy_indexer_transactions_total",
			Help: "Total number of transactions indexed",
		}),
		actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "specy_indexer_actions_total",
			Help: "Total number of reconciliation actions by entity kind and action",
		}, []string{"kind", "action"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "specy_indexer_failures_total",
			Help: "Total number of failed blocks by stage",
		}, []string{"stage"}),
		blockDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "specy_indexer_block_duration_seconds",
			Help:    "Time spent reconciling one block",
			Buckets: prometheus.DefBuckets,
		}),
		lastHeight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "specy_indexer_last_block_height",
			Help: "Height of the last indexed block",
		}),
	}
}

func (m *Metrics) observeBlock(height uint64, seconds float64, txs int) {
	if m == nil {
		return
	}
	m.blocks.Inc()
	m.transactions.Add(float64(txs))
	m.blockDuration.Observe(seconds)
	m.lastHeight.Set(float64(height))
}

func (m *Metrics) observeAction(kind, action string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(kind, action).Inc()
}

func (m *Metrics) observeFailure(stage string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(stage).Inc()
}
