package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAuthEventCounts(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.AuthEvent("login", "success")
	m.AuthEvent("login", "success")
	m.AuthEvent("login", "failure")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthEvents.WithLabelValues("login", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthEvents.WithLabelValues("login", "failure")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.AuthEvent("login", "success") })
}

func TestNewOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
