// Package logging persists delivered evaluation results for audit purposes.
// The engine stays stateless: records are append-only snapshots written after
// delivery, never read back by the scoring path.
package logging

import (
	"context"
	"time"

	"github.com/ambuflow/crewmatch/core/model"
)

// Record captures one delivered evaluation.
type Record struct {
	Timestamp       time.Time                 `json:"timestamp"`
	EvaluationID    string                    `json:"evaluation_id"`
	Requirement     model.DispatchRequirement `json:"requirement"`
	RosterSize      int                       `json:"roster_size"`
	Recommendations []model.Recommendation    `json:"recommendations"`
	Alerts          []model.CapabilityAlert   `json:"alerts,omitempty"`
}

// LogStore appends evaluation records.
type LogStore interface {
	Append(ctx context.Context, rec Record) error
	Close() error
}

// NopStore discards records.
type NopStore struct{}

// Append implements LogStore.
func (NopStore) Append(context.Context, Record) error { return nil }

// Close implements LogStore.
func (NopStore) Close() error { return nil }
