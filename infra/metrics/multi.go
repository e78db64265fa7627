package metrics

import coremetrics "github.com/ambuflow/crewmatch/core/metrics"

// MultiSink fans recommendation records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRecommendations forwards the records to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordRecommendations(records []coremetrics.RecommendationRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordRecommendations(records); err != nil {
			return err
		}
	}
	return nil
}

// RecordEvaluationSummary forwards summaries to sinks that record them.
func (m *MultiSink) RecordEvaluationSummary(sum coremetrics.EvaluationSummary) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.SummaryRecorder); ok {
			if err := rec.RecordEvaluationSummary(sum); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordAlerts forwards alert records to sinks that record them.
func (m *MultiSink) RecordAlerts(records []coremetrics.AlertRecord) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.AlertRecorder); ok {
			if err := rec.RecordAlerts(records); err != nil {
				return err
			}
		}
	}
	return nil
}
