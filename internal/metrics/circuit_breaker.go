// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var breakerStates = []string{"closed", "half-open", "open"}

var (
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ipwww_circuit_breaker_state",
		Help: "Upstream circuit breaker position; the current state reads 1, the others 0",
	}, []string{"component", "state"})

	circuitBreakerTrips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ipwww_circuit_breaker_trips_total",
		Help: "Transitions of an upstream breaker to open, by cause",
	}, []string{"component", "reason"})
)

// SetCircuitBreakerState marks state as the breaker's current position.
func SetCircuitBreakerState(component, state string) {
	for _, s := range breakerStates {
		v := 0.0
		if s == state {
			v = 1
		}
		circuitBreakerState.WithLabelValues(component, s).Set(v)
	}
}

// RecordCircuitBreakerTrip counts one opening of the breaker.
func RecordCircuitBreakerTrip(component, reason string) {
	circuitBreakerTrips.WithLabelValues(component, reason).Inc()
}
