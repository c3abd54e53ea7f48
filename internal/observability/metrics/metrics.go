package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngineMetrics counts committed transitions and times availability queries.
type EngineMetrics struct {
	commitsTotal        *prometheus.CounterVec
	availabilitySeconds prometheus.Histogram
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		commitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "engine",
			Name:      "commits_total",
			Help:      "Appointment transitions by kind and outcome",
		}, []string{"kind", "outcome"}),
		availabilitySeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Subsystem: "engine",
			Name:      "availability_seconds",
			Help:      "Latency of availability queries",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.commitsTotal, m.availabilitySeconds)
	return m
}

// ObserveCommit records one transition. outcome is "ok" or an error kind.
func (m *EngineMetrics) ObserveCommit(kind, outcome string) {
	if m == nil {
		return
	}
	m.commitsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *EngineMetrics) ObserveAvailability(seconds float64) {
	if m == nil {
		return
	}
	m.availabilitySeconds.Observe(seconds)
}

// NotifyMetrics tracks notification delivery per sink.
type NotifyMetrics struct {
	eventsTotal  *prometheus.CounterVec
	droppedTotal prometheus.Counter
}

func NewNotifyMetrics(reg prometheus.Registerer) *NotifyMetrics {
	m := &NotifyMetrics{
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "notify",
			Name:      "events_total",
			Help:      "Notification deliveries by sink and status",
		}, []string{"sink", "status"}),
		droppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "notify",
			Name:      "dropped_total",
			Help:      "Notifications dropped because the queue was full",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.eventsTotal, m.droppedTotal)
	return m
}

func (m *NotifyMetrics) ObserveDelivery(sink string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.eventsTotal.WithLabelValues(sink, status).Inc()
}

func (m *NotifyMetrics) ObserveDropped() {
	if m == nil {
		return
	}
	m.droppedTotal.Inc()
}
