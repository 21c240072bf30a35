package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// evaluations counts rule evaluations by outcome: match, no_match, error.
var evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "engine",
	Name:      "rule_evaluations_total",
	Help:      "Total number of rule evaluations, by rule and outcome",
}, []string{"rule", "outcome"})

var eventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "engine",
	Name:      "events_processed_total",
	Help:      "Total number of events appended to hot state and evaluated",
})

var sinkFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "engine",
	Name:      "sink_failures_total",
	Help:      "Total number of matches a sink failed to publish",
}, []string{"sink"})

var prunedEvents = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "engine",
	Name:      "pruned_events_total",
	Help:      "Total number of events dropped from hot state by the sweeper",
})

var trackedDevices = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "aevon",
	Subsystem: "engine",
	Name:      "tracked_devices",
	Help:      "Number of devices with hot state after the last sweep",
})

var seededEvents = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "engine",
	Name:      "seeded_events_total",
	Help:      "Total number of archived events loaded into hot state for newly seen devices",
})

var seedFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "engine",
	Name:      "seed_failures_total",
	Help:      "Total number of hot state seeds that could not read the archive",
})
