// Package events defines the event types the engine publishes on the
// internal bus. Subscribers (metrics bridges, audit consumers) receive them
// without coupling the engine to any delivery mechanism.
package events

import (
	"time"

	"github.com/ambuflow/crewmatch/core/model"
)

// EvaluationStarted is published when an evaluation enters the scoring phase.
type EvaluationStarted struct {
	EvaluationID string
	ServiceType  model.ServiceType
	RosterSize   int
	Departure    time.Time
}

// CandidateScored is published once per scored roster member.
type CandidateScored struct {
	EvaluationID   string
	CandidateID    string
	CompositeScore float64
	RouteUnknown   bool
}

// EvaluationRanked is published after ranking completes, before delivery.
type EvaluationRanked struct {
	EvaluationID string
	TopChoiceID  string
	Count        int
	Duration     time.Duration
}

// AlertRaised is published for each capability alert attached to a delivered
// result.
type AlertRaised struct {
	EvaluationID string
	Alert        model.CapabilityAlert
}

// EvaluationFailed is published when an evaluation aborts before scoring.
type EvaluationFailed struct {
	EvaluationID string
	Err          error
}
