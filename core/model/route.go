package model

import "encoding/json"

// TrafficSeverity is a coarse bucket summarising the expected delay on a route.
type TrafficSeverity int

const (
	TrafficLow TrafficSeverity = iota
	TrafficMedium
	TrafficHigh
)

// String returns a human-readable representation of the severity.
func (s TrafficSeverity) String() string {
	switch s {
	case TrafficMedium:
		return "medium"
	case TrafficHigh:
		return "high"
	default:
		return "low"
	}
}

// MarshalJSON encodes the severity as its string form.
func (s TrafficSeverity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the string form of a severity.
func (s *TrafficSeverity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "medium":
		*s = TrafficMedium
	case "high":
		*s = TrafficHigh
	default:
		*s = TrafficLow
	}
	return nil
}

// TrafficSample is an ephemeral traffic estimate for one departure. It is
// recomputed per request and never persisted by the engine.
type TrafficSample struct {
	Severity TrafficSeverity `json:"severity"`
	// DelayMinutes is the expected extra travel time caused by traffic.
	DelayMinutes int `json:"delay_minutes"`
	// AlternateRoutesAvailable is a heuristic proxy: any non-low severity
	// implies a routing provider would offer alternatives.
	AlternateRoutesAvailable bool `json:"alternate_routes_available"`
	// Confidence is in [0,1]. Zero marks an unknown route whose estimate must
	// not be treated as authoritative.
	Confidence float64 `json:"confidence"`
}

// Unknown reports whether the sample carries no usable information.
func (t TrafficSample) Unknown() bool { return t.Confidence == 0 }

// RouteEstimate is the derived travel assessment for a requirement's
// origin/destination pair at the planned departure time.
type RouteEstimate struct {
	DistanceKm          float64       `json:"distance_km"`
	NominalDurationMin  float64       `json:"nominal_duration_min"`
	AdjustedDurationMin float64       `json:"traffic_adjusted_duration_min"`
	Traffic             TrafficSample `json:"traffic"`
}

// UnknownRouteEstimate returns the zero-confidence estimate used when either
// endpoint of a route could not be resolved.
func UnknownRouteEstimate() RouteEstimate {
	return RouteEstimate{Traffic: TrafficSample{Severity: TrafficLow, Confidence: 0}}
}
