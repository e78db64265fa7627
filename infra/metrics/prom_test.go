package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/ambuflow/crewmatch/core/metrics"
	"github.com/ambuflow/crewmatch/core/model"
)

func testRecords() []coremetrics.RecommendationRecord {
	return []coremetrics.RecommendationRecord{
		{
			EvaluationID:       "ev-1",
			CandidateID:        "c1",
			ServiceType:        model.ServiceALS,
			CompositeScore:     94.6,
			CertificationScore: 100,
			AvailabilityScore:  100,
			TravelScore:        82,
			TopChoice:          true,
			EvaluatedAt:        time.Now(),
		},
		{
			EvaluationID:   "ev-1",
			CandidateID:    "c2",
			ServiceType:    model.ServiceALS,
			CompositeScore: 61,
			RouteUnknown:   true,
			EvaluatedAt:    time.Now(),
		},
	}
}

func TestPromSink_RecordRecommendations(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordRecommendations(testRecords()))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["recommendations_total"])
	assert.True(t, names["recommendation_composite_score"])
}

func TestPromSink_RecordAlertsAndSummary(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	ar, ok := sink.(coremetrics.AlertRecorder)
	require.True(t, ok)
	require.NoError(t, ar.RecordAlerts([]coremetrics.AlertRecord{
		{EvaluationID: "ev-1", Alert: model.CapabilityAlert{EmployeeID: "c1", Type: model.AlertExpired, Severity: model.AlertHigh}},
	}))

	sr, ok := sink.(coremetrics.SummaryRecorder)
	require.True(t, ok)
	require.NoError(t, sr.RecordEvaluationSummary(coremetrics.EvaluationSummary{RosterSize: 3}))
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	_, err = NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	assert.NoError(t, err, "re-registration should reuse existing collectors")
}

func TestMultiSink_ForwardsToAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	multi := NewMultiSink(prom, coremetrics.NopSink{})
	assert.NoError(t, multi.RecordRecommendations(testRecords()))
	assert.NoError(t, multi.RecordEvaluationSummary(coremetrics.EvaluationSummary{RosterSize: 2}))
	assert.NoError(t, multi.RecordAlerts(nil))
}
