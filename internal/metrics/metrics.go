// Package metrics counts commands and tracks lot occupancy for one session.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kula-app/parking-lot/internal/lot"
)

const namespace = "parkinglot"

// Recorder holds the session's collectors on a private registry
type Recorder struct {
	registry *prometheus.Registry
	commands *prometheus.CounterVec
	occupied prometheus.Gauge
	capacity prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands applied to the parking lot, by command and outcome.",
		}, []string{"command", "outcome"}),
		occupied: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slots_occupied",
			Help:      "Slots currently holding a vehicle.",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slots_capacity",
			Help:      "Slots in the current parking lot.",
		}),
	}
	r.registry.MustRegister(r.commands, r.occupied, r.capacity)
	return r
}

// Observe counts one command and refreshes the occupancy gauges
func (r *Recorder) Observe(command, outcome string, occ lot.Occupancy) {
	r.commands.WithLabelValues(command, outcome).Inc()
	r.occupied.Set(float64(occ.Occupied))
	r.capacity.Set(float64(occ.Capacity))
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile dumps the metrics in the Prometheus text format
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
