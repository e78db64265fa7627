package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ServiceType defines the level of care a transport request demands.
type ServiceType int

const (
	ServiceUnknown ServiceType = iota
	ServiceBLS                 // basic life support
	ServiceALS                 // advanced life support
	ServiceMICU                // mobile intensive care unit
	ServiceWC                  // wheelchair transport
)

// String returns a human-readable representation of the service type.
func (t ServiceType) String() string {
	switch t {
	case ServiceBLS:
		return "BLS"
	case ServiceALS:
		return "ALS"
	case ServiceMICU:
		return "MICU"
	case ServiceWC:
		return "WC"
	default:
		return "unknown"
	}
}

// ParseServiceType converts the wire representation back to a ServiceType.
func ParseServiceType(s string) (ServiceType, error) {
	switch s {
	case "BLS":
		return ServiceBLS, nil
	case "ALS":
		return ServiceALS, nil
	case "MICU":
		return ServiceMICU, nil
	case "WC":
		return ServiceWC, nil
	default:
		return ServiceUnknown, fmt.Errorf("unknown service type %q", s)
	}
}

// MarshalJSON encodes the service type as its string form.
func (t ServiceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes the string form of a service type.
func (t *ServiceType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st, err := ParseServiceType(raw)
	if err != nil {
		return err
	}
	*t = st
	return nil
}

// DispatchRequirement represents one transport request needing a crew. The
// engine treats it as read-only; geocoding of the address fields happens
// before the requirement reaches the engine, so a nil coordinate means the
// address could not be resolved.
type DispatchRequirement struct {
	ServiceType            ServiceType `json:"service_type"`
	RequiredCertifications []string    `json:"required_certifications,omitempty"`
	Origin                 *Coordinate `json:"origin,omitempty"`
	OriginAddress          string      `json:"origin_address,omitempty"`
	Destination            *Coordinate `json:"destination,omitempty"`
	DestinationAddress     string      `json:"destination_address,omitempty"`
	DepartureTime          time.Time   `json:"departure_time"`
}

// Validate checks the requirement at the engine boundary. A missing service
// type or a request with neither location set is rejected up front instead of
// being null-checked throughout the scoring path.
func (r DispatchRequirement) Validate() error {
	if r.ServiceType == ServiceUnknown {
		return fmt.Errorf("service type is required")
	}
	if r.Origin == nil && r.OriginAddress == "" && r.Destination == nil && r.DestinationAddress == "" {
		return fmt.Errorf("origin and destination are both unset")
	}
	return nil
}
