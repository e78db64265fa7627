package recommend

import (
	"math"
	"strings"
	"testing"

	"github.com/ambuflow/crewmatch/core/eligibility"
	"github.com/ambuflow/crewmatch/core/model"
)

func newTestScorer() Scorer {
	return NewScorer(eligibility.NewChecker(), DefaultWeights())
}

func knownEstimate(adjustedMin float64, delay int, sev model.TrafficSeverity) model.RouteEstimate {
	return model.RouteEstimate{
		DistanceKm:          adjustedMin / 60 * 50,
		NominalDurationMin:  adjustedMin - float64(delay),
		AdjustedDurationMin: adjustedMin,
		Traffic: model.TrafficSample{
			Severity:     sev,
			DelayMinutes: delay,
			Confidence:   0.85,
		},
	}
}

func TestScorer_PeakHourCertifiedMatch(t *testing.T) {
	s := newTestScorer()
	rec := s.Score(
		model.CrewCandidate{ID: "c1", CertificationLevel: "ALS", Status: model.StatusActive},
		model.DispatchRequirement{ServiceType: model.ServiceALS},
		knownEstimate(18, 6, model.TrafficMedium),
	)

	if rec.ComponentScores.Certification != 100 {
		t.Fatalf("expected certification 100 got %v", rec.ComponentScores.Certification)
	}
	if rec.ComponentScores.Availability != 100 {
		t.Fatalf("expected availability 100 got %v", rec.ComponentScores.Availability)
	}
	if rec.ComponentScores.Travel != 82 {
		t.Fatalf("expected travel 82 got %v", rec.ComponentScores.Travel)
	}
	if math.Abs(rec.CompositeScore-94.6) > 0.01 {
		t.Fatalf("expected composite ~94.6 got %v", rec.CompositeScore)
	}
}

func TestScorer_WeightIdentity(t *testing.T) {
	s := newTestScorer()
	candidates := []model.CrewCandidate{
		{ID: "a", CertificationLevel: "MICU", Status: model.StatusActive},
		{ID: "b", CertificationLevel: "BLS", Status: model.StatusOnBreak},
		{ID: "c", CertificationLevel: "WC", Status: model.StatusOffDuty},
	}
	req := model.DispatchRequirement{ServiceType: model.ServiceALS}
	for _, c := range candidates {
		rec := s.Score(c, req, knownEstimate(40, 0, model.TrafficLow))
		want := 0.4*rec.ComponentScores.Certification +
			0.3*rec.ComponentScores.Availability +
			0.3*rec.ComponentScores.Travel
		if math.Abs(rec.CompositeScore-want) > 1e-9 {
			t.Errorf("%s: composite %v does not match weighted mean %v", c.ID, rec.CompositeScore, want)
		}
	}
}

func TestScorer_UnknownRouteNeutralTravel(t *testing.T) {
	s := newTestScorer()
	rec := s.Score(
		model.CrewCandidate{ID: "c1", CertificationLevel: "ALS", Status: model.StatusActive},
		model.DispatchRequirement{ServiceType: model.ServiceALS},
		model.UnknownRouteEstimate(),
	)
	if rec.ComponentScores.Travel != 70 {
		t.Fatalf("expected neutral travel score 70 got %v", rec.ComponentScores.Travel)
	}
	found := false
	for _, r := range rec.Reasons {
		if strings.Contains(r, "could not be resolved") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unresolved-route reason: %v", rec.Reasons)
	}
}

func TestScorer_LongRouteClampsToZero(t *testing.T) {
	s := newTestScorer()
	rec := s.Score(
		model.CrewCandidate{ID: "c1", CertificationLevel: "ALS", Status: model.StatusActive},
		model.DispatchRequirement{ServiceType: model.ServiceALS},
		knownEstimate(240, 80, model.TrafficHigh),
	)
	if rec.ComponentScores.Travel != 0 {
		t.Fatalf("expected travel clamped to 0 got %v", rec.ComponentScores.Travel)
	}
}

func TestScorer_AvailabilityGrades(t *testing.T) {
	cases := []struct {
		status model.CrewStatus
		want   float64
	}{
		{model.StatusActive, 100},
		{model.StatusOnBreak, 50},
		{model.StatusOnDuty, 25},
		{model.StatusOffDuty, 0},
		{model.StatusUnknown, 0},
	}
	for _, tc := range cases {
		if got := availabilityScore(tc.status); got != tc.want {
			t.Errorf("%s: expected %v got %v", tc.status, tc.want, got)
		}
	}
}

func TestScorer_ReasonsOrderAndPresence(t *testing.T) {
	s := newTestScorer()
	rec := s.Score(
		model.CrewCandidate{ID: "c1", CertificationLevel: "WC", Status: model.StatusOnBreak},
		model.DispatchRequirement{ServiceType: model.ServiceMICU},
		knownEstimate(20, 0, model.TrafficLow),
	)
	if len(rec.Reasons) != 3 {
		t.Fatalf("expected 3 reasons got %v", rec.Reasons)
	}
	if !strings.Contains(rec.Reasons[0], "certification") {
		t.Errorf("first reason must describe certification fit: %q", rec.Reasons[0])
	}
	if !strings.Contains(rec.Reasons[1], "break") {
		t.Errorf("second reason must describe availability: %q", rec.Reasons[1])
	}
	if !strings.Contains(rec.Reasons[2], "travel") {
		t.Errorf("third reason must describe travel: %q", rec.Reasons[2])
	}
}

func TestScorer_BoundsHoldAcrossInputs(t *testing.T) {
	s := newTestScorer()
	statuses := []model.CrewStatus{model.StatusActive, model.StatusOnDuty, model.StatusOnBreak, model.StatusOffDuty}
	levels := []string{"BLS", "ALS", "MICU", "WC", ""}
	estimates := []model.RouteEstimate{
		knownEstimate(0, 0, model.TrafficLow),
		knownEstimate(18, 6, model.TrafficMedium),
		knownEstimate(500, 200, model.TrafficHigh),
		model.UnknownRouteEstimate(),
	}
	for _, st := range statuses {
		for _, lvl := range levels {
			for _, est := range estimates {
				rec := s.Score(
					model.CrewCandidate{ID: "c", CertificationLevel: lvl, Status: st},
					model.DispatchRequirement{ServiceType: model.ServiceALS},
					est,
				)
				for name, v := range map[string]float64{
					"composite":     rec.CompositeScore,
					"certification": rec.ComponentScores.Certification,
					"availability":  rec.ComponentScores.Availability,
					"travel":        rec.ComponentScores.Travel,
				} {
					if v < 0 || v > 100 {
						t.Fatalf("%s score out of bounds: %v", name, v)
					}
				}
			}
		}
	}
}
