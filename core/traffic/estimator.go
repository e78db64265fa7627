// Package traffic estimates congestion effects on a route using a fixed
// peak-window heuristic. The multipliers are a documented stand-in for a real
// traffic provider and keep the engine fully deterministic.
package traffic

import (
	"math"
	"time"

	"github.com/ambuflow/crewmatch/core/model"
)

const (
	peakMultiplier    = 1.5
	offPeakMultiplier = 1.0

	peakConfidence    = 0.85
	offPeakConfidence = 0.95
)

// Estimator derives a traffic sample from a departure time and a nominal
// route duration. The zero value is ready to use.
type Estimator struct{}

// NewEstimator returns an Estimator.
func NewEstimator() Estimator { return Estimator{} }

// Multiplier returns the hour-of-day traffic multiplier for the departure
// time. Peak windows are 07:00-09:59 and 16:00-18:59 local time.
func (Estimator) Multiplier(departure time.Time) float64 {
	if inPeakWindow(departure) {
		return peakMultiplier
	}
	return offPeakMultiplier
}

// Estimate computes the traffic sample for a departure and nominal duration
// in minutes. The result is deterministic for identical inputs.
func (e Estimator) Estimate(departure time.Time, nominalDurationMin float64) model.TrafficSample {
	multiplier := e.Multiplier(departure)
	delayMinutes := int(math.Round(nominalDurationMin * (multiplier - 1)))
	delayPct := (multiplier - 1) * 100

	severity := classify(delayPct)

	confidence := offPeakConfidence
	if inPeakWindow(departure) {
		confidence = peakConfidence
	}

	return model.TrafficSample{
		Severity:                 severity,
		DelayMinutes:             delayMinutes,
		AlternateRoutesAvailable: severity != model.TrafficLow,
		Confidence:               confidence,
	}
}

// classify buckets a delay percentage into a severity. Boundaries are strict:
// exactly 50% is medium, exactly 25% is low.
func classify(delayPct float64) model.TrafficSeverity {
	switch {
	case delayPct > 50:
		return model.TrafficHigh
	case delayPct > 25:
		return model.TrafficMedium
	default:
		return model.TrafficLow
	}
}

func inPeakWindow(t time.Time) bool {
	h := t.Hour()
	return (h >= 7 && h <= 9) || (h >= 16 && h <= 18)
}
