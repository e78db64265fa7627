package recommend

import (
	"fmt"
	"strings"

	"github.com/ambuflow/crewmatch/core/eligibility"
	"github.com/ambuflow/crewmatch/core/model"
)

// neutralTravelScore is assigned when a candidate's route could not be
// resolved. It keeps unresolved candidates rankable without rewarding or
// punishing a location nobody could verify.
const neutralTravelScore = 70.0

// Scorer combines eligibility, availability and travel signals into one
// recommendation per candidate. Ranking and top-choice flagging are the
// engine's job.
type Scorer struct {
	checker eligibility.Checker
	weights Weights
}

// NewScorer returns a Scorer with the given weights.
func NewScorer(checker eligibility.Checker, weights Weights) Scorer {
	return Scorer{checker: checker, weights: weights}
}

// Score produces the unranked recommendation for one candidate.
func (s Scorer) Score(candidate model.CrewCandidate, requirement model.DispatchRequirement, est model.RouteEstimate) model.Recommendation {
	elig := s.checker.Check(candidate, requirement)

	certScore := elig.Fraction * 100
	availScore := availabilityScore(candidate.Status)
	travelScore := travelScore(est)

	composite := s.weights.Certification*certScore +
		s.weights.Availability*availScore +
		s.weights.Travel*travelScore

	return model.Recommendation{
		CandidateID:    candidate.ID,
		CompositeScore: clamp(composite, 0, 100),
		ComponentScores: model.ComponentScores{
			Certification: certScore,
			Availability:  availScore,
			Travel:        travelScore,
		},
		Reasons:       reasons(candidate, requirement, elig, est),
		RouteEstimate: est,
	}
}

// availabilityScore grades the duty state. Active crews are fully available,
// crews on break can be recalled, crews on duty would need to be freed first.
func availabilityScore(status model.CrewStatus) float64 {
	switch status {
	case model.StatusActive:
		return 100
	case model.StatusOnBreak:
		return 50
	case model.StatusOnDuty:
		return 25
	default:
		return 0
	}
}

// travelScore converts the traffic-adjusted duration into a score. Shorter
// adjusted travel time scores higher; unknown routes get the neutral default.
func travelScore(est model.RouteEstimate) float64 {
	if est.Traffic.Unknown() {
		return neutralTravelScore
	}
	return clamp(100-est.AdjustedDurationMin, 0, 100)
}

// reasons builds the explanation strings in fixed priority order:
// certification fit, availability, travel.
func reasons(candidate model.CrewCandidate, requirement model.DispatchRequirement, elig eligibility.Result, est model.RouteEstimate) []string {
	out := make([]string, 0, 3)

	switch {
	case elig.Fraction >= 1:
		out = append(out, fmt.Sprintf("fully certified for %s transport", requirement.ServiceType))
	case elig.Fraction > 0:
		r := fmt.Sprintf("%s certification covers %s transport", candidate.CertificationLevel, requirement.ServiceType)
		if len(elig.Missing) > 0 {
			r += fmt.Sprintf(", missing %s", strings.Join(elig.Missing, ", "))
		}
		out = append(out, r)
	default:
		out = append(out, fmt.Sprintf("missing required certification: %s", strings.Join(elig.Missing, ", ")))
	}

	switch candidate.Status {
	case model.StatusActive:
		out = append(out, "active and ready for dispatch")
	case model.StatusOnBreak:
		out = append(out, "currently on break")
	case model.StatusOnDuty:
		out = append(out, "already on another assignment")
	default:
		out = append(out, "off duty")
	}

	if est.Traffic.Unknown() {
		out = append(out, "route could not be resolved, using neutral travel score")
	} else {
		out = append(out, fmt.Sprintf("estimated %.0f min travel, %s traffic (%d min delay)",
			est.AdjustedDurationMin, est.Traffic.Severity, est.Traffic.DelayMinutes))
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
