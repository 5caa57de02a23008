package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolCollector exports pgxpool statistics at scrape time.
type PoolCollector struct {
	stat func() *pgxpool.Stat

	acquired *prometheus.Desc
	idle     *prometheus.Desc
	total    *prometheus.Desc
	max      *prometheus.Desc
	acquires *prometheus.Desc
}

// NewPoolCollector creates a collector reading from stat, typically pool.Stat.
func NewPoolCollector(stat func() *pgxpool.Stat) *PoolCollector {
	return &PoolCollector{
		stat: stat,
		acquired: prometheus.NewDesc(
			"chainpulse_db_pool_acquired_conns",
			"Connections currently checked out of the pool",
			nil, nil,
		),
		idle: prometheus.NewDesc(
			"chainpulse_db_pool_idle_conns",
			"Idle connections in the pool",
			nil, nil,
		),
		total: prometheus.NewDesc(
			"chainpulse_db_pool_total_conns",
			"Total connections in the pool",
			nil, nil,
		),
		max: prometheus.NewDesc(
			"chainpulse_db_pool_max_conns",
			"Configured maximum pool size",
			nil, nil,
		),
		acquires: prometheus.NewDesc(
			"chainpulse_db_pool_acquires_total",
			"Cumulative successful connection acquisitions",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.max
	ch <- c.acquires
}

// Collect implements prometheus.Collector
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stat()
	if s == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(s.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(s.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(s.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.acquires, prometheus.CounterValue, float64(s.AcquireCount()))
}
