package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/ambuflow/crewmatch/core/metrics"
)

// PromSink records recommendation events in Prometheus metrics.
type PromSink struct {
	recommendations *prometheus.CounterVec
	compositeScore  *prometheus.HistogramVec
	alerts          *prometheus.CounterVec
	rosterSize      prometheus.Gauge
}

// NewPromSink registers recommendation metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	recs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendations_total",
		Help: "Total number of ranked recommendations produced",
	}, []string{"service_type", "top_choice"})
	score := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommendation_composite_score",
		Help:    "Distribution of composite scores per service type",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{"service_type"})
	alerts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "capability_alerts_total",
		Help: "Capability alerts attached to delivered evaluations",
	}, []string{"type", "severity"})
	roster := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "evaluation_roster_size",
		Help: "Roster size of the most recent evaluation",
	})

	if err := reg.Register(recs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			recs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(score); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			score = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(alerts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			alerts = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(roster); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			roster = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{recommendations: recs, compositeScore: score, alerts: alerts, rosterSize: roster}, nil
}

// RecordRecommendations increments the counters for each ranked candidate.
func (s *PromSink) RecordRecommendations(records []coremetrics.RecommendationRecord) error {
	for _, r := range records {
		st := r.ServiceType.String()
		s.recommendations.WithLabelValues(st, strconv.FormatBool(r.TopChoice)).Inc()
		s.compositeScore.WithLabelValues(st).Observe(r.CompositeScore)
	}
	return nil
}

// RecordEvaluationSummary sets the roster size gauge.
func (s *PromSink) RecordEvaluationSummary(sum coremetrics.EvaluationSummary) error {
	s.rosterSize.Set(float64(sum.RosterSize))
	return nil
}

// RecordAlerts increments the alert counter per type and severity.
func (s *PromSink) RecordAlerts(records []coremetrics.AlertRecord) error {
	for _, r := range records {
		s.alerts.WithLabelValues(r.Alert.Type.String(), r.Alert.Severity.String()).Inc()
	}
	return nil
}
