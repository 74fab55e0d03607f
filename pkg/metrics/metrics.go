// Package metrics exposes Prometheus collectors for simulation runs.
//
// A sweep is a batch job, so instead of serving /metrics the CLI can dump the
// default registry to a node-exporter textfile with WriteTextfile.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	SimulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clustersim_simulations_total",
			Help: "Total number of completed simulation runs by scheduler",
		},
		[]string{"scheduler"},
	)

	SimulationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clustersim_simulation_failures_total",
			Help: "Total number of rejected or aborted simulation runs by scheduler",
		},
		[]string{"scheduler"},
	)

	SimulationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clustersim_simulation_seconds",
			Help:    "Wall-clock time spent simulating one run in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"scheduler"},
	)

	Makespan = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clustersim_makespan_seconds",
			Help: "Simulated workload completion time by scheduler and capacity",
		},
		[]string{"scheduler", "capacity"},
	)

	Efficiency = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clustersim_efficiency_ratio",
			Help: "Task footprint over resource footprint by scheduler and capacity",
		},
		[]string{"scheduler", "capacity"},
	)
)

func init() {
	prometheus.MustRegister(SimulationsTotal)
	prometheus.MustRegister(SimulationFailures)
	prometheus.MustRegister(SimulationSeconds)
	prometheus.MustRegister(Makespan)
	prometheus.MustRegister(Efficiency)
}

// RecordRun records a completed run
func RecordRun(scheduler string, capacity int, makespan, efficiency float64, timer *Timer) {
	c := strconv.Itoa(capacity)
	SimulationsTotal.WithLabelValues(scheduler).Inc()
	timer.ObserveDurationVec(SimulationSeconds, scheduler)
	Makespan.WithLabelValues(scheduler, c).Set(makespan)
	Efficiency.WithLabelValues(scheduler, c).Set(efficiency)
}

// RecordFailure records a run that did not complete
func RecordFailure(scheduler string) {
	SimulationFailures.WithLabelValues(scheduler).Inc()
}

// WriteTextfile writes every registered metric to path in the text exposition format
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
