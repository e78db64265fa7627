package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	evaluationDuration *prometheus.HistogramVec
	candidatesScored   *prometheus.CounterVec
	unresolvedRoutes   prometheus.Counter
	topChoiceScore     *prometheus.GaugeVec
	evaluationFailures *prometheus.CounterVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, prometheus.Counter, *prometheus.GaugeVec, *prometheus.CounterVec) {
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evaluation_duration_seconds",
			Help:    "Time spent scoring and ranking one roster",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service_type"},
	)
	scored := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_scored_total",
			Help: "Number of roster candidates scored",
		},
		[]string{"service_type"},
	)
	unresolved := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "unresolved_routes_total",
			Help: "Number of candidates scored with an unresolved route",
		},
	)
	top := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "top_choice_score",
			Help: "Composite score of the most recent top choice",
		},
		[]string{"service_type"},
	)
	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluation_failures_total",
			Help: "Number of evaluations rejected before scoring",
		},
		[]string{"reason"},
	)
	return dur, scored, unresolved, top, failures
}

func init() {
	evaluationDuration, candidatesScored, unresolvedRoutes, topChoiceScore, evaluationFailures = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers engine metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		evaluationDuration, candidatesScored, unresolvedRoutes, topChoiceScore, evaluationFailures,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}
