package plan

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	planRuns        *prometheus.CounterVec
	slotsAssigned   prometheus.Counter
	slotsUnassigned prometheus.Counter
	runDuration     prometheus.Histogram
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Counter, prometheus.Counter, prometheus.Histogram) {
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_runs_total",
			Help: "Number of completed planning runs",
		},
		[]string{"weekday"},
	)
	assigned := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plan_slots_assigned_total",
			Help: "Number of slots assigned a substitute",
		},
	)
	unassigned := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plan_slots_unassigned_total",
			Help: "Number of slots left without an eligible substitute",
		},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plan_run_duration_seconds",
			Help:    "Duration of planning runs",
			Buckets: prometheus.DefBuckets,
		},
	)
	return runs, assigned, unassigned, duration
}

func init() {
	planRuns, slotsAssigned, slotsUnassigned, runDuration = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers planning metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(planRuns, slotsAssigned, slotsUnassigned, runDuration)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	planRuns, slotsAssigned, slotsUnassigned, runDuration = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
