package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

type collector struct {
	agg    *Aggregator
	reads  *prometheus.Desc
	writes *prometheus.Desc
	ratio  *prometheus.Desc
}

// Collector exposes the aggregator to Prometheus. Values are read from the
// live counters on every scrape.
func (a *Aggregator) Collector(namespace string) prometheus.Collector {
	return &collector{
		agg: a,
		reads: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "reads_total"),
			"Completed read critical sections.", nil, nil),
		writes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "writes_total"),
			"Completed write critical sections.", nil, nil),
		ratio: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "read_write_ratio"),
			"Reads per write, 0 until the first write.", nil, nil),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.reads
	ch <- c.writes
	ch <- c.ratio
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	reads, writes := c.agg.reads.Load(), c.agg.writes.Load()
	ch <- prometheus.MustNewConstMetric(c.reads, prometheus.CounterValue, float64(reads))
	ch <- prometheus.MustNewConstMetric(c.writes, prometheus.CounterValue, float64(writes))
	ch <- prometheus.MustNewConstMetric(c.ratio, prometheus.GaugeValue, Ratio(reads, writes))
}
