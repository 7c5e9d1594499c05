package redis

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 客户端指标。所有方法对nil接收者安全，未开启metrics时为空操作
type Metrics struct {
	commands        *prometheus.CounterVec
	replies         prometheus.Counter
	pushes          prometheus.Counter
	discardedPushes prometheus.Counter
	errors          *prometheus.CounterVec
	pending         prometheus.Gauge
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// MakeMetrics 注册一组collector。reg为nil时使用默认registry
func MakeMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redis_client",
			Name:      "commands_total",
			Help:      "Commands written to the server.",
		}, []string{"verb"}),
		replies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "redis_client",
			Name:      "replies_total",
			Help:      "Replies consumed from the pending queue.",
		}),
		pushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "redis_client",
			Name:      "pushes_total",
			Help:      "Pub/sub pushes routed to a handler.",
		}),
		discardedPushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "redis_client",
			Name:      "pushes_discarded_total",
			Help:      "Pub/sub pushes with no matching handler.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redis_client",
			Name:      "errors_total",
			Help:      "Errors surfaced to callers.",
		}, []string{"kind"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "redis_client",
			Name:      "pending_commands",
			Help:      "Commands written but not fully answered.",
		}),
	}
	reg.MustRegister(m.commands, m.replies, m.pushes, m.discardedPushes, m.errors, m.pending)
	return m
}

// sharedMetrics 多个Client共用一组collector，避免重复注册
func sharedMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = MakeMetrics(nil)
	})
	return defaultMetrics
}

func (m *Metrics) commandSent(verb string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(verb).Inc()
}

func (m *Metrics) replyReceived() {
	if m == nil {
		return
	}
	m.replies.Inc()
}

func (m *Metrics) pendingInc() {
	if m == nil {
		return
	}
	m.pending.Inc()
}

func (m *Metrics) pendingDec() {
	if m == nil {
		return
	}
	m.pending.Dec()
}

func (m *Metrics) pushRouted(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.pushes.Inc()
	} else {
		m.discardedPushes.Inc()
	}
}

func (m *Metrics) errorRaised(kind string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(kind).Inc()
}
