// Package eligibility grades how well a crew member's certifications satisfy
// a dispatch requirement. The graduated fraction (0, 0.5, 1.0) is what lets
// the composite score distinguish ideal from workable candidates.
package eligibility

import "github.com/ambuflow/crewmatch/core/model"

// coverage maps each service type to the certification levels that can cover
// it partially. A higher level of care can staff a lower-acuity transport,
// and any transport level can take a wheelchair run.
var coverage = map[model.ServiceType][]string{
	model.ServiceBLS:  {model.ServiceALS.String(), model.ServiceMICU.String()},
	model.ServiceALS:  {model.ServiceMICU.String()},
	model.ServiceMICU: nil,
	model.ServiceWC: {
		model.ServiceBLS.String(),
		model.ServiceALS.String(),
		model.ServiceMICU.String(),
	},
}

// Result reports the eligibility fraction and any missing requirements.
type Result struct {
	// Fraction is 1.0 for an exact match, 0.5 for a superset cover and 0.0
	// when the candidate holds no relevant certification.
	Fraction float64  `json:"fraction"`
	Missing  []string `json:"missing,omitempty"`
}

// Checker evaluates candidates against requirements. The zero value is ready
// to use.
type Checker struct{}

// NewChecker returns a Checker.
func NewChecker() Checker { return Checker{} }

// Check grades the candidate against the requirement's service type and
// required certifications. Candidates are never excluded here: a zero
// fraction still ranks, it just scores last.
func (Checker) Check(candidate model.CrewCandidate, requirement model.DispatchRequirement) Result {
	res := Result{Fraction: levelFraction(candidate, requirement.ServiceType)}
	if res.Fraction == 0 {
		res.Missing = append(res.Missing, requirement.ServiceType.String())
	}

	for _, cert := range requirement.RequiredCertifications {
		if !candidate.HoldsCertification(cert) {
			res.Missing = append(res.Missing, cert)
			// An exact level match without every required certification is
			// only a workable candidate, not an ideal one.
			if res.Fraction > 0.5 {
				res.Fraction = 0.5
			}
		}
	}
	return res
}

func levelFraction(candidate model.CrewCandidate, service model.ServiceType) float64 {
	if candidate.CertificationLevel == service.String() {
		return 1.0
	}
	for _, level := range coverage[service] {
		if candidate.CertificationLevel == level {
			return 0.5
		}
	}
	return 0.0
}
