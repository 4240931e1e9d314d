// Package telemetry 将名册状态导出为 Prometheus 指标
package telemetry

import (
	"sync"

	"github.com/decker502/roster/pkg/roster"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "roster"

// Collector 名册指标采集器，实现 prometheus.Collector
//
// 区域人数、已布置数与容量在每次采集时从名册读取；修改结果计数由 Observe 累加。
// mu 是名册所有者用来串行化修改的锁，采集时持有它读取名册，可为 nil（单 goroutine 场景）。
type Collector struct {
	store *roster.Store
	mu    *sync.Mutex

	unitsDesc    *prometheus.Desc
	placedDesc   *prometheus.Desc
	capacityDesc *prometheus.Desc

	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewCollector 创建采集器
func NewCollector(store *roster.Store, mu *sync.Mutex) *Collector {
	return &Collector{
		store: store,
		mu:    mu,
		unitsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "units"),
			"Number of units in each roster zone.",
			[]string{"zone"}, nil,
		),
		placedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "units_placed"),
			"Number of deployed units occupying a board cell.",
			nil, nil,
		),
		capacityDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "capacity"),
			"Fixed roster capacity.",
			nil, nil,
		),
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_applied_total",
			Help:      "Roster mutations committed, by operation.",
		}, []string{"op"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_rejected_total",
			Help:      "Roster mutations rejected, by operation and error kind.",
		}, []string{"op", "kind"}),
	}
}

// Observe 记录一次修改操作的结果，err 为 nil 表示已提交
func (c *Collector) Observe(op string, err error) {
	if err == nil {
		c.applied.WithLabelValues(op).Inc()
		return
	}
	c.rejected.WithLabelValues(op, roster.Reason(err)).Inc()
}

// Describe 实现 prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.unitsDesc
	ch <- c.placedDesc
	ch <- c.capacityDesc
	c.applied.Describe(ch)
	c.rejected.Describe(ch)
}

// Collect 实现 prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	var counts [roster.ZoneCount]int
	var placed int
	if c.mu != nil {
		c.mu.Lock()
	}
	for _, zone := range roster.Zones() {
		counts[zone] = c.store.CountInZone(zone)
	}
	placed = c.store.PlacedCount()
	if c.mu != nil {
		c.mu.Unlock()
	}

	for _, zone := range roster.Zones() {
		ch <- prometheus.MustNewConstMetric(c.unitsDesc, prometheus.GaugeValue, float64(counts[zone]), zone.String())
	}
	ch <- prometheus.MustNewConstMetric(c.placedDesc, prometheus.GaugeValue, float64(placed))
	ch <- prometheus.MustNewConstMetric(c.capacityDesc, prometheus.GaugeValue, float64(c.store.Capacity()))
	c.applied.Collect(ch)
	c.rejected.Collect(ch)
}
