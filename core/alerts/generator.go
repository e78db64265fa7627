// Package alerts turns certification expiry records into capability alerts
// that feed dispatch eligibility reviews.
package alerts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ambuflow/crewmatch/core/model"
)

// Expiry thresholds in days.
const (
	expiryWindowDays = 90
	urgentWindowDays = 14
	nearbyWindowDays = 30
)

// Generator produces capability alerts for a roster. The zero value is ready
// to use.
type Generator struct{}

// NewGenerator returns a Generator.
func NewGenerator() Generator { return Generator{} }

// Generate emits one alert per expiring or expired certification record and
// one per crew member whose role certification is absent from the records.
// Alerts are ordered high severity first, ties by ascending days remaining.
func (g Generator) Generate(roster []model.CrewCandidate, records []model.CertificationRecord, now time.Time) []model.CapabilityAlert {
	var out []model.CapabilityAlert

	recorded := make(map[string]map[string]bool, len(roster))
	for _, rec := range records {
		if recorded[rec.EmployeeID] == nil {
			recorded[rec.EmployeeID] = make(map[string]bool)
		}
		recorded[rec.EmployeeID][rec.Name] = true

		if rec.ExpiresAt == nil {
			continue
		}
		if a, ok := expiryAlert(rec, now); ok {
			out = append(out, a)
		}
	}

	for _, member := range roster {
		if member.CertificationLevel == "" {
			continue
		}
		if recorded[member.ID][member.CertificationLevel] {
			continue
		}
		out = append(out, model.CapabilityAlert{
			EmployeeID:        member.ID,
			Type:              model.AlertMissing,
			CertificationName: member.CertificationLevel,
			Severity:          model.AlertHigh,
			Message:           fmt.Sprintf("no %s certification on record", member.CertificationLevel),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		if out[i].DaysRemaining != out[j].DaysRemaining {
			return out[i].DaysRemaining < out[j].DaysRemaining
		}
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].CertificationName < out[j].CertificationName
	})
	return out
}

func expiryAlert(rec model.CertificationRecord, now time.Time) (model.CapabilityAlert, bool) {
	days := int(math.Floor(rec.ExpiresAt.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return model.CapabilityAlert{
			EmployeeID:        rec.EmployeeID,
			Type:              model.AlertExpired,
			CertificationName: rec.Name,
			Severity:          model.AlertHigh,
			DaysRemaining:     days,
			Message:           fmt.Sprintf("%s expired %d days ago", rec.Name, -days),
		}, true
	case days <= expiryWindowDays:
		sev := model.AlertMedium
		if days <= urgentWindowDays {
			sev = model.AlertHigh
		} else if days > nearbyWindowDays {
			sev = model.AlertLow
		}
		return model.CapabilityAlert{
			EmployeeID:        rec.EmployeeID,
			Type:              model.AlertExpiring,
			CertificationName: rec.Name,
			Severity:          sev,
			DaysRemaining:     days,
			Message:           fmt.Sprintf("%s expires in %d days", rec.Name, days),
		}, true
	default:
		return model.CapabilityAlert{}, false
	}
}

// ForEmployees filters alerts down to the given employee ids, preserving
// order.
func ForEmployees(all []model.CapabilityAlert, ids []string) []model.CapabilityAlert {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	var out []model.CapabilityAlert
	for _, a := range all {
		if keep[a.EmployeeID] {
			out = append(out, a)
		}
	}
	return out
}
