package query

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// routedConditions counts conditions by kind (count, sequence) and by the
// group the split point put them in (near, far, cross).
var routedConditions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "router",
	Name:      "conditions_total",
	Help:      "Total number of conditions routed, by kind and split group",
}, []string{"kind", "group"})

// sequenceFallbacks counts which phase settled a straddling sequence.
var sequenceFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "router",
	Name:      "sequence_phase_total",
	Help:      "Total number of straddling sequences settled, by phase",
}, []string{"phase"})

var storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "router",
	Name:      "store_errors_total",
	Help:      "Total number of failed store calls",
}, []string{"store"})

// cacheLookups counts window cache outcomes: full, partial, unavailable,
// miss, corrupt, error.
var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "window_cache",
	Name:      "lookups_total",
	Help:      "Total number of window cache lookups, by outcome",
}, []string{"outcome"})

var cacheWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "aevon",
	Subsystem: "window_cache",
	Name:      "write_failures_total",
	Help:      "Total number of window cache writes that failed",
})
