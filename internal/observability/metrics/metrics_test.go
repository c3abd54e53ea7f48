package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEngineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngineMetrics(reg)

	m.ObserveCommit("create", "ok")
	m.ObserveCommit("create", "slot_taken")
	m.ObserveCommit("create", "slot_taken")
	m.ObserveAvailability(0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.commitsTotal.WithLabelValues("create", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.commitsTotal.WithLabelValues("create", "slot_taken")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.availabilitySeconds))
}

func TestNotifyMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewNotifyMetrics(reg)

	m.ObserveDelivery("redis", nil)
	m.ObserveDelivery("redis", errors.New("down"))
	m.ObserveDropped()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsTotal.WithLabelValues("redis", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsTotal.WithLabelValues("redis", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.droppedTotal))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var e *EngineMetrics
	var n *NotifyMetrics
	assert.NotPanics(t, func() {
		e.ObserveCommit("cancel", "ok")
		e.ObserveAvailability(1)
		n.ObserveDelivery("s3", nil)
		n.ObserveDropped()
	})
}
