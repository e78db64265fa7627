package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Coordinate is an immutable WGS84 position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both components are real numbers. Coordinates coming
// from a failed geocoding step are represented as nil pointers upstream, but
// NaN can still leak in through hand-built payloads.
func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.Latitude) && !math.IsNaN(c.Longitude)
}

// CrewStatus describes the current duty state of a crew member.
type CrewStatus int

const (
	StatusUnknown CrewStatus = iota
	StatusActive
	StatusOnDuty
	StatusOnBreak
	StatusOffDuty
)

// String returns a human-readable representation of the status.
func (s CrewStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusOnDuty:
		return "on_duty"
	case StatusOnBreak:
		return "on_break"
	case StatusOffDuty:
		return "off_duty"
	default:
		return "unknown"
	}
}

// ParseCrewStatus converts the wire representation back to a CrewStatus.
func ParseCrewStatus(s string) (CrewStatus, error) {
	switch s {
	case "active":
		return StatusActive, nil
	case "on_duty":
		return StatusOnDuty, nil
	case "on_break":
		return StatusOnBreak, nil
	case "off_duty":
		return StatusOffDuty, nil
	default:
		return StatusUnknown, fmt.Errorf("unknown crew status %q", s)
	}
}

// MarshalJSON encodes the status as its string form.
func (s CrewStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the string form of a status.
func (s *CrewStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st, err := ParseCrewStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// CrewCandidate is a read-only roster snapshot supplied per matching call.
// Staleness of the snapshot is the caller's responsibility.
type CrewCandidate struct {
	ID                 string      `json:"id"`
	CertificationLevel string      `json:"certification_level"`
	Certifications     []string    `json:"certifications,omitempty"`
	Status             CrewStatus  `json:"status"`
	HomeStation        *Coordinate `json:"home_station,omitempty"`
	HomeStationID      string      `json:"home_station_id,omitempty"`
	LastAssignment     *time.Time  `json:"last_assignment,omitempty"`
}

// HoldsCertification reports whether the candidate holds the named
// certification, matching the level field as well as the explicit list.
func (c CrewCandidate) HoldsCertification(name string) bool {
	if c.CertificationLevel == name {
		return true
	}
	for _, cert := range c.Certifications {
		if cert == name {
			return true
		}
	}
	return false
}

// Validate checks that the roster entry is sound.
func (c CrewCandidate) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("crew candidate id is required")
	}
	return nil
}
