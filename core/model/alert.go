package model

import (
	"encoding/json"
	"time"
)

// AlertType classifies a capability alert.
type AlertType int

const (
	AlertExpiring AlertType = iota
	AlertExpired
	AlertMissing
)

// String returns a human-readable representation of the alert type.
func (t AlertType) String() string {
	switch t {
	case AlertExpired:
		return "expired"
	case AlertMissing:
		return "missing"
	default:
		return "expiring"
	}
}

// MarshalJSON encodes the alert type as its string form.
func (t AlertType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes the string form of an alert type.
func (t *AlertType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "expired":
		*t = AlertExpired
	case "missing":
		*t = AlertMissing
	default:
		*t = AlertExpiring
	}
	return nil
}

// AlertSeverity grades how urgently a capability alert needs attention.
type AlertSeverity int

const (
	AlertLow AlertSeverity = iota
	AlertMedium
	AlertHigh
)

// String returns a human-readable representation of the severity.
func (s AlertSeverity) String() string {
	switch s {
	case AlertMedium:
		return "medium"
	case AlertHigh:
		return "high"
	default:
		return "low"
	}
}

// MarshalJSON encodes the severity as its string form.
func (s AlertSeverity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the string form of a severity.
func (s *AlertSeverity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "medium":
		*s = AlertMedium
	case "high":
		*s = AlertHigh
	default:
		*s = AlertLow
	}
	return nil
}

// CertificationRecord ties a named certification and its expiry date to a
// crew member. A nil expiry means the certification does not lapse.
type CertificationRecord struct {
	EmployeeID string     `json:"employee_id"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// CapabilityAlert warns about an expiring, expired or missing certification
// for a specific crew member.
type CapabilityAlert struct {
	EmployeeID        string        `json:"employee_id"`
	Type              AlertType     `json:"type"`
	CertificationName string        `json:"certification_name"`
	Severity          AlertSeverity `json:"severity"`
	// DaysRemaining is negative once the certification has lapsed. Missing
	// certifications carry zero.
	DaysRemaining int    `json:"days_remaining"`
	Message       string `json:"message"`
}
