package metrics

import (
	"time"

	"github.com/ambuflow/crewmatch/core/model"
)

// RecommendationRecord represents one ranked candidate to be recorded for
// observability purposes.
type RecommendationRecord struct {
	EvaluationID       string
	CandidateID        string
	ServiceType        model.ServiceType
	CompositeScore     float64
	CertificationScore float64
	AvailabilityScore  float64
	TravelScore        float64
	TopChoice          bool
	RouteUnknown       bool
	EvaluatedAt        time.Time
}

// MetricsSink records recommendation results.
type MetricsSink interface {
	RecordRecommendations(records []RecommendationRecord) error
}

// EvaluationSummary captures aggregate data about one evaluation run.
type EvaluationSummary struct {
	EvaluationID string
	ServiceType  model.ServiceType
	RosterSize   int
	AlertCount   int
	MeanScore    float64
	StdDevScore  float64
	Duration     time.Duration
	Time         time.Time
}

// SummaryRecorder records per-evaluation aggregates. Sinks implement it in
// addition to MetricsSink when they can store summaries.
type SummaryRecorder interface {
	RecordEvaluationSummary(s EvaluationSummary) error
}

// AlertRecord represents one capability alert to be recorded.
type AlertRecord struct {
	EvaluationID string
	Alert        model.CapabilityAlert
	Time         time.Time
}

// AlertRecorder records capability alerts emitted alongside recommendations.
type AlertRecorder interface {
	RecordAlerts(records []AlertRecord) error
}

// NopSink discards all records.
type NopSink struct{}

// RecordRecommendations implements MetricsSink.
func (NopSink) RecordRecommendations([]RecommendationRecord) error { return nil }

// RecordEvaluationSummary implements SummaryRecorder.
func (NopSink) RecordEvaluationSummary(EvaluationSummary) error { return nil }

// RecordAlerts implements AlertRecorder.
func (NopSink) RecordAlerts([]AlertRecord) error { return nil }
