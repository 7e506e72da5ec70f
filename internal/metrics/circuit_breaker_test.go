// SPDX-License-Identifier: MIT

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/ipwww-iptv/internal/metrics"
)

// gatherStates returns the breaker gauge for component keyed by state.
func gatherStates(t *testing.T, component string) map[string]float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var family *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "ipwww_circuit_breaker_state" {
			family = f
			break
		}
	}
	require.NotNil(t, family)

	states := map[string]float64{}
	for _, m := range family.GetMetric() {
		labels := map[string]string{}
		for _, lp := range m.GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		if labels["component"] == component {
			states[labels["state"]] = m.GetGauge().GetValue()
		}
	}
	return states
}

func TestSetCircuitBreakerStateIsOneHot(t *testing.T) {
	metrics.SetCircuitBreakerState("test_ibl", "open")
	assert.Equal(t, map[string]float64{"closed": 0, "half-open": 0, "open": 1}, gatherStates(t, "test_ibl"))

	metrics.SetCircuitBreakerState("test_ibl", "closed")
	assert.Equal(t, map[string]float64{"closed": 1, "half-open": 0, "open": 0}, gatherStates(t, "test_ibl"))
}

func TestRecordCircuitBreakerTrip(t *testing.T) {
	metrics.RecordCircuitBreakerTrip("test_sounds", "threshold")

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	var total float64
	for _, f := range families {
		if f.GetName() != "ipwww_circuit_breaker_trips_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "component" && lp.GetValue() == "test_sounds" {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.InDelta(t, 1, total, 0.001)
}
