package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ambuflow/crewmatch/core/model"
	"github.com/ambuflow/crewmatch/core/route"
	"github.com/ambuflow/crewmatch/core/traffic"
	"github.com/ambuflow/crewmatch/internal/eventbus"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	ev := route.NewEvaluator(route.NewHeuristicRouter(traffic.NewEstimator()))
	eng, err := NewEngine(cfg, ev, nopLogger{}, nil, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng
}

func station(origin model.Coordinate, km float64) *model.Coordinate {
	c := model.Coordinate{Latitude: origin.Latitude + km/111.195, Longitude: origin.Longitude}
	return &c
}

func testRequirement(hour int) model.DispatchRequirement {
	origin := model.Coordinate{Latitude: 48.85, Longitude: 2.35}
	dest := model.Coordinate{Latitude: 48.95, Longitude: 2.45}
	return model.DispatchRequirement{
		ServiceType:   model.ServiceALS,
		Origin:        &origin,
		Destination:   &dest,
		DepartureTime: time.Date(2026, 3, 12, hour, 0, 0, 0, time.Local),
	}
}

func TestEngine_EmptyRoster(t *testing.T) {
	eng := newTestEngine(t, Config{})
	_, err := eng.Evaluate(context.Background(), testRequirement(8), nil, nil)
	if !errors.Is(err, ErrEmptyRoster) {
		t.Fatalf("expected ErrEmptyRoster got %v", err)
	}
}

func TestEngine_InvalidRequirement(t *testing.T) {
	eng := newTestEngine(t, Config{})
	roster := []model.CrewCandidate{{ID: "c1", CertificationLevel: "ALS", Status: model.StatusActive}}

	_, err := eng.Evaluate(context.Background(), model.DispatchRequirement{}, roster, nil)
	var ire *InvalidRequirementError
	if !errors.As(err, &ire) {
		t.Fatalf("expected InvalidRequirementError got %v", err)
	}
}

func TestEngine_SingleTopChoice(t *testing.T) {
	eng := newTestEngine(t, Config{})
	req := testRequirement(8)
	roster := []model.CrewCandidate{
		{ID: "c1", CertificationLevel: "ALS", Status: model.StatusActive, HomeStation: station(*req.Origin, 10)},
		{ID: "c2", CertificationLevel: "MICU", Status: model.StatusOnBreak, HomeStation: station(*req.Origin, 5)},
		{ID: "c3", CertificationLevel: "BLS", Status: model.StatusOffDuty, HomeStation: station(*req.Origin, 2)},
	}

	res, err := eng.Evaluate(context.Background(), req, roster, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	tops := 0
	for _, r := range res.Recommendations {
		if r.IsTopChoice {
			tops++
		}
	}
	if tops != 1 {
		t.Fatalf("expected exactly one top choice got %d", tops)
	}
	if !res.Recommendations[0].IsTopChoice {
		t.Fatalf("top choice must be the first ranked entry")
	}
	for i := 1; i < len(res.Recommendations); i++ {
		if res.Recommendations[i].CompositeScore > res.Recommendations[i-1].CompositeScore {
			t.Fatalf("recommendations not sorted by composite score")
		}
	}
}

func TestEngine_TieBrokenByCandidateID(t *testing.T) {
	eng := newTestEngine(t, Config{})
	req := testRequirement(14)
	// Identical candidates except for id: scores tie exactly.
	roster := []model.CrewCandidate{
		{ID: "zeta", CertificationLevel: "ALS", Status: model.StatusActive, HomeStation: station(*req.Origin, 10)},
		{ID: "alpha", CertificationLevel: "ALS", Status: model.StatusActive, HomeStation: station(*req.Origin, 10)},
	}

	res, err := eng.Evaluate(context.Background(), req, roster, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Recommendations[0].CandidateID != "alpha" {
		t.Fatalf("tie must break by ascending id, got %s first", res.Recommendations[0].CandidateID)
	}
	if !res.Recommendations[0].IsTopChoice || res.Recommendations[1].IsTopChoice {
		t.Fatalf("top choice flag misplaced on tie")
	}
}

func TestEngine_Deterministic(t *testing.T) {
	eng := newTestEngine(t, Config{Workers: 8})
	req := testRequirement(8)
	var roster []model.CrewCandidate
	levels := []string{"ALS", "BLS", "MICU", "WC"}
	statuses := []model.CrewStatus{model.StatusActive, model.StatusOnBreak, model.StatusOnDuty, model.StatusOffDuty}
	for i := 0; i < 24; i++ {
		roster = append(roster, model.CrewCandidate{
			ID:                 string(rune('a'+i%26)) + string(rune('0'+i/26)),
			CertificationLevel: levels[i%len(levels)],
			Status:             statuses[i%len(statuses)],
			HomeStation:        station(*req.Origin, float64(i)),
		})
	}

	first, err := eng.Evaluate(context.Background(), req, roster, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := eng.Evaluate(context.Background(), req, roster, nil)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if !reflect.DeepEqual(got.Recommendations, first.Recommendations) {
			t.Fatalf("ranking differs between identical calls")
		}
	}
}

func TestEngine_UnresolvedCandidateDegradesGracefully(t *testing.T) {
	eng := newTestEngine(t, Config{})
	req := testRequirement(14)
	roster := []model.CrewCandidate{
		{ID: "near", CertificationLevel: "ALS", Status: model.StatusActive, HomeStation: station(*req.Origin, 5)},
		{ID: "lost", CertificationLevel: "ALS", Status: model.StatusActive}, // no home station
	}

	res, err := eng.Evaluate(context.Background(), req, roster, nil)
	if err != nil {
		t.Fatalf("unresolved candidate must not fail the call: %v", err)
	}
	if len(res.Recommendations) != 2 {
		t.Fatalf("unresolved candidate must still rank, got %d entries", len(res.Recommendations))
	}
	for _, r := range res.Recommendations {
		if r.CandidateID != "lost" {
			continue
		}
		if r.ComponentScores.Travel != 70 {
			t.Fatalf("expected neutral travel score 70 got %v", r.ComponentScores.Travel)
		}
		if !r.RouteEstimate.Traffic.Unknown() {
			t.Fatalf("expected zero-confidence estimate")
		}
	}
}

func TestEngine_MissingCertificationStillRanks(t *testing.T) {
	eng := newTestEngine(t, Config{})
	req := testRequirement(14)
	req.ServiceType = model.ServiceMICU
	roster := []model.CrewCandidate{
		{ID: "qualified", CertificationLevel: "MICU", Status: model.StatusActive, HomeStation: station(*req.Origin, 5)},
		{ID: "unqualified", CertificationLevel: "WC", Status: model.StatusActive, HomeStation: station(*req.Origin, 5)},
	}

	res, err := eng.Evaluate(context.Background(), req, roster, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	last := res.Recommendations[len(res.Recommendations)-1]
	if last.CandidateID != "unqualified" {
		t.Fatalf("uncertified candidate should rank last")
	}
	if last.ComponentScores.Certification != 0 {
		t.Fatalf("expected zero certification score got %v", last.ComponentScores.Certification)
	}
}

func TestEngine_AlertsFilteredToRoster(t *testing.T) {
	eng := newTestEngine(t, Config{})
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
	eng.SetClock(func() time.Time { return now })

	req := testRequirement(14)
	roster := []model.CrewCandidate{
		{ID: "c1", CertificationLevel: "ALS", Status: model.StatusActive, HomeStation: station(*req.Origin, 5)},
	}
	soon := now.Add(10 * 24 * time.Hour)
	records := []model.CertificationRecord{
		{EmployeeID: "c1", Name: "ALS", ExpiresAt: &soon},
		{EmployeeID: "someone-else", Name: "BLS", ExpiresAt: &soon},
	}

	res, err := eng.Evaluate(context.Background(), req, roster, records)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Alerts) != 1 || res.Alerts[0].EmployeeID != "c1" {
		t.Fatalf("alerts must be filtered to ranked candidates: %+v", res.Alerts)
	}
	if res.Alerts[0].Type != model.AlertExpiring || res.Alerts[0].Severity != model.AlertHigh {
		t.Fatalf("unexpected alert: %+v", res.Alerts[0])
	}
}

func TestEngine_PublishesLifecycleEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	sub := bus.Subscribe()

	ev := route.NewEvaluator(route.NewHeuristicRouter(traffic.NewEstimator()))
	eng, err := NewEngine(Config{}, ev, nopLogger{}, nil, bus)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	req := testRequirement(8)
	roster := []model.CrewCandidate{
		{ID: "c1", CertificationLevel: "ALS", Status: model.StatusActive, HomeStation: station(*req.Origin, 5)},
	}
	if _, err := eng.Evaluate(context.Background(), req, roster, nil); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	// Started, scored, ranked: at least three events on the bus.
	for i := 0; i < 3; i++ {
		select {
		case <-sub:
		case <-time.After(time.Second):
			t.Fatalf("missing lifecycle event %d", i)
		}
	}
}

func TestNewEngine_RejectsBadWeights(t *testing.T) {
	ev := route.NewEvaluator(route.NewHeuristicRouter(traffic.NewEstimator()))
	cfg := Config{Weights: Weights{Certification: 0.9, Availability: 0.9, Travel: 0.9}}
	if _, err := NewEngine(cfg, ev, nopLogger{}, nil, nil); err == nil {
		t.Fatal("expected weight validation error")
	}
}
