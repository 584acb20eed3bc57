// Package metrics counts value lifecycle events with Prometheus collectors.
package metrics

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mesh-intelligence/semval/pkg/value"
)

const namespace = "semval"

var _ value.Observer = (*Recorder)(nil)

// Recorder implements value.Observer. Collectors live in the Recorder's own
// registry so that several recorders (one per CLI run or per test) never
// collide on the default registry.
type Recorder struct {
	registry *prometheus.Registry

	// events counts lifecycle events.
	// Labels: type (value type id), event (user_value, keys, unstub, invalid, not_allowed)
	events *prometheus.CounterVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	return &Recorder{
		registry: reg,
		events: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "value",
			Name:      "events_total",
			Help:      "Total value lifecycle events by type and event",
		}, []string{"type", "event"}),
	}
}

// Observe records one event.
func (r *Recorder) Observe(typeID string, e value.Event) {
	r.events.WithLabelValues(typeID, e.String()).Inc()
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Totals sums the recorded events per event name across all types.
func (r *Recorder) Totals() (map[string]float64, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "event" {
					totals[lp.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}
	return totals, nil
}

// EventNames returns the keys of totals in sorted order.
func EventNames(totals map[string]float64) []string {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
