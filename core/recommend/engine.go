package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/ambuflow/crewmatch/core/alerts"
	"github.com/ambuflow/crewmatch/core/eligibility"
	"github.com/ambuflow/crewmatch/core/events"
	"github.com/ambuflow/crewmatch/core/logger"
	coremetrics "github.com/ambuflow/crewmatch/core/metrics"
	"github.com/ambuflow/crewmatch/core/model"
	"github.com/ambuflow/crewmatch/core/recommend/logging"
	"github.com/ambuflow/crewmatch/core/route"
	"github.com/ambuflow/crewmatch/internal/eventbus"
)

// Result is the delivered output of one evaluation: the ranked
// recommendations plus the capability alerts relevant to the ranked
// candidates.
type Result struct {
	EvaluationID    string                  `json:"evaluation_id"`
	Recommendations []model.Recommendation  `json:"recommendations"`
	Alerts          []model.CapabilityAlert `json:"alerts,omitempty"`
	EvaluatedAt     time.Time               `json:"evaluated_at"`
	Duration        time.Duration           `json:"-"`
}

// Engine ranks a roster of crew candidates for one dispatch requirement.
// Each Evaluate call is independent and shares no mutable state, so the
// engine is safe for concurrent use.
type Engine struct {
	scorer    Scorer
	evaluator *route.Evaluator
	alertGen  alerts.Generator
	workers   int
	logger    logger.Logger
	metrics   coremetrics.MetricsSink
	bus       eventbus.EventBus
	store     logging.LogStore
	now       func() time.Time
}

// NewEngine creates an engine. The route evaluator and logger are required;
// a nil sink disables metrics recording and a nil bus disables events.
func NewEngine(cfg Config, evaluator *route.Evaluator, log logger.Logger, sink coremetrics.MetricsSink, bus eventbus.EventBus) (*Engine, error) {
	if evaluator == nil || log == nil {
		return nil, fmt.Errorf("recommend: nil parameter provided to NewEngine")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Engine{
		scorer:    NewScorer(eligibility.NewChecker(), cfg.Weights),
		evaluator: evaluator,
		alertGen:  alerts.NewGenerator(),
		workers:   cfg.Workers,
		logger:    log,
		metrics:   sink,
		bus:       bus,
		now:       time.Now,
	}, nil
}

// SetLogStore configures the store used to persist delivered evaluations.
func (e *Engine) SetLogStore(store logging.LogStore) { e.store = store }

// SetClock overrides the time source used for alert generation.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// Close releases the route evaluator and the audit store.
func (e *Engine) Close() error {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			return err
		}
	}
	return e.evaluator.Close()
}

// Evaluate scores and ranks the roster for the requirement. Fatal errors
// (empty roster, malformed requirement) abort before any scoring; a single
// candidate's route failure only degrades that candidate's travel score.
func (e *Engine) Evaluate(ctx context.Context, requirement model.DispatchRequirement, roster []model.CrewCandidate, records []model.CertificationRecord) (Result, error) {
	id := uuid.NewString()
	start := time.Now()

	if len(roster) == 0 {
		e.fail(id, ErrEmptyRoster, "empty_roster")
		return Result{}, ErrEmptyRoster
	}
	if err := requirement.Validate(); err != nil {
		ire := &InvalidRequirementError{Reason: err.Error()}
		e.fail(id, ire, "invalid_requirement")
		return Result{}, ire
	}

	e.publish(events.EvaluationStarted{
		EvaluationID: id,
		ServiceType:  requirement.ServiceType,
		RosterSize:   len(roster),
		Departure:    requirement.DepartureTime,
	})

	recs := e.scoreAll(ctx, id, requirement, roster)

	// Ordering is decided only after every result is collected, so worker
	// completion order never leaks into the ranking.
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].CompositeScore != recs[j].CompositeScore {
			return recs[i].CompositeScore > recs[j].CompositeScore
		}
		return recs[i].CandidateID < recs[j].CandidateID
	})
	recs[0].IsTopChoice = true

	duration := time.Since(start)
	e.publish(events.EvaluationRanked{
		EvaluationID: id,
		TopChoiceID:  recs[0].CandidateID,
		Count:        len(recs),
		Duration:     duration,
	})

	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.CandidateID
	}
	relevant := alerts.ForEmployees(e.alertGen.Generate(roster, records, e.now()), ids)
	for _, a := range relevant {
		e.publish(events.AlertRaised{EvaluationID: id, Alert: a})
	}

	result := Result{
		EvaluationID:    id,
		Recommendations: recs,
		Alerts:          relevant,
		EvaluatedAt:     e.now(),
		Duration:        duration,
	}

	e.recordMetrics(requirement, result)
	e.appendAudit(ctx, requirement, len(roster), result)

	e.logger.Infof("ranked %d candidates for %s dispatch, top choice %s (%.1f)",
		len(recs), requirement.ServiceType, recs[0].CandidateID, recs[0].CompositeScore)
	return result, nil
}

// scoreAll evaluates every candidate through a bounded worker pool. Results
// land in a pre-sized slice indexed by roster position, so no coordination
// beyond the wait is needed.
func (e *Engine) scoreAll(ctx context.Context, id string, requirement model.DispatchRequirement, roster []model.CrewCandidate) []model.Recommendation {
	recs := make([]model.Recommendation, len(roster))

	workers := e.workers
	if workers > len(roster) {
		workers = len(roster)
	}
	if workers <= 1 {
		for i, c := range roster {
			recs[i] = e.scoreOne(ctx, id, requirement, c)
		}
		return recs
	}

	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				recs[i] = e.scoreOne(ctx, id, requirement, roster[i])
			}
		}()
	}
	for i := range roster {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return recs
}

// scoreOne computes the travel estimate from the candidate's home station to
// the dispatch origin and scores the candidate.
func (e *Engine) scoreOne(ctx context.Context, id string, requirement model.DispatchRequirement, candidate model.CrewCandidate) model.Recommendation {
	est := e.evaluator.Evaluate(ctx, candidate.HomeStation, requirement.Origin, requirement.DepartureTime)
	rec := e.scorer.Score(candidate, requirement, est)

	candidatesScored.WithLabelValues(requirement.ServiceType.String()).Inc()
	if est.Traffic.Unknown() {
		unresolvedRoutes.Inc()
		e.logger.Debugw("unresolved route, neutral travel score applied", map[string]any{
			"candidate_id": candidate.ID,
			"evaluation":   id,
		})
	}
	e.publish(events.CandidateScored{
		EvaluationID:   id,
		CandidateID:    candidate.ID,
		CompositeScore: rec.CompositeScore,
		RouteUnknown:   est.Traffic.Unknown(),
	})
	return rec
}

func (e *Engine) fail(id string, err error, reason string) {
	evaluationFailures.WithLabelValues(reason).Inc()
	e.publish(events.EvaluationFailed{EvaluationID: id, Err: err})
	e.logger.Warnf("evaluation %s rejected: %v", id, err)
}

func (e *Engine) publish(ev eventbus.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

// recordMetrics forwards the delivered result to the configured sinks.
func (e *Engine) recordMetrics(requirement model.DispatchRequirement, res Result) {
	st := requirement.ServiceType.String()
	evaluationDuration.WithLabelValues(st).Observe(res.Duration.Seconds())
	topChoiceScore.WithLabelValues(st).Set(res.Recommendations[0].CompositeScore)

	records := make([]coremetrics.RecommendationRecord, 0, len(res.Recommendations))
	scores := make([]float64, 0, len(res.Recommendations))
	for _, r := range res.Recommendations {
		scores = append(scores, r.CompositeScore)
		records = append(records, coremetrics.RecommendationRecord{
			EvaluationID:       res.EvaluationID,
			CandidateID:        r.CandidateID,
			ServiceType:        requirement.ServiceType,
			CompositeScore:     r.CompositeScore,
			CertificationScore: r.ComponentScores.Certification,
			AvailabilityScore:  r.ComponentScores.Availability,
			TravelScore:        r.ComponentScores.Travel,
			TopChoice:          r.IsTopChoice,
			RouteUnknown:       r.RouteEstimate.Traffic.Unknown(),
			EvaluatedAt:        res.EvaluatedAt,
		})
	}
	if err := e.metrics.RecordRecommendations(records); err != nil {
		e.logger.Errorf("metrics error: %v", err)
	}

	if sr, ok := e.metrics.(coremetrics.SummaryRecorder); ok {
		sd := 0.0
		if len(scores) > 1 {
			sd = stat.StdDev(scores, nil)
		}
		summary := coremetrics.EvaluationSummary{
			EvaluationID: res.EvaluationID,
			ServiceType:  requirement.ServiceType,
			RosterSize:   len(res.Recommendations),
			AlertCount:   len(res.Alerts),
			MeanScore:    stat.Mean(scores, nil),
			StdDevScore:  sd,
			Duration:     res.Duration,
			Time:         res.EvaluatedAt,
		}
		if err := sr.RecordEvaluationSummary(summary); err != nil {
			e.logger.Errorf("summary metrics error: %v", err)
		}
	}

	if ar, ok := e.metrics.(coremetrics.AlertRecorder); ok && len(res.Alerts) > 0 {
		alertRecords := make([]coremetrics.AlertRecord, 0, len(res.Alerts))
		for _, a := range res.Alerts {
			alertRecords = append(alertRecords, coremetrics.AlertRecord{
				EvaluationID: res.EvaluationID,
				Alert:        a,
				Time:         res.EvaluatedAt,
			})
		}
		if err := ar.RecordAlerts(alertRecords); err != nil {
			e.logger.Errorf("alert metrics error: %v", err)
		}
	}
}

// appendAudit persists the delivered result if a store is configured.
func (e *Engine) appendAudit(ctx context.Context, requirement model.DispatchRequirement, rosterSize int, res Result) {
	if e.store == nil {
		return
	}
	err := e.store.Append(ctx, logging.Record{
		Timestamp:       res.EvaluatedAt,
		EvaluationID:    res.EvaluationID,
		Requirement:     requirement,
		RosterSize:      rosterSize,
		Recommendations: res.Recommendations,
		Alerts:          res.Alerts,
	})
	if err != nil {
		e.logger.Errorf("audit log error: %v", err)
	}
}
