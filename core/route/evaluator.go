package route

import (
	"context"
	"time"

	"github.com/ambuflow/crewmatch/core/geo"
	"github.com/ambuflow/crewmatch/core/model"
	"github.com/ambuflow/crewmatch/core/traffic"
)

// avgSpeedKmh is the assumed flat road speed for the heuristic router. Real
// deployments substitute a routing-provider duration via a custom Router.
const avgSpeedKmh = 50.0

// HeuristicRouter estimates routes from the haversine distance and the
// peak-window traffic heuristic. It performs no I/O and never fails.
type HeuristicRouter struct {
	traffic traffic.Estimator
}

// NewHeuristicRouter returns a HeuristicRouter using the given estimator.
func NewHeuristicRouter(est traffic.Estimator) *HeuristicRouter {
	return &HeuristicRouter{traffic: est}
}

// Route computes the estimate for the pair of coordinates.
func (r *HeuristicRouter) Route(_ context.Context, origin, destination model.Coordinate, departure time.Time) (model.RouteEstimate, error) {
	distance := geo.DistanceKm(origin, destination)
	nominal := distance / avgSpeedKmh * 60

	sample := r.traffic.Estimate(departure, nominal)
	return model.RouteEstimate{
		DistanceKm:          distance,
		NominalDurationMin:  nominal,
		AdjustedDurationMin: nominal + float64(sample.DelayMinutes),
		Traffic:             sample,
	}, nil
}

// Close implements Router. The heuristic router holds no resources.
func (r *HeuristicRouter) Close() error { return nil }

// Evaluator wraps a Router and absorbs unresolved locations and provider
// failures into zero-confidence estimates. Callers never see an error: an
// unknown route signals itself through Traffic.Confidence == 0.
type Evaluator struct {
	router Router
}

// NewEvaluator returns an Evaluator backed by the given router.
func NewEvaluator(router Router) *Evaluator {
	return &Evaluator{router: router}
}

// Evaluate computes the route estimate for the requirement's endpoints. A nil
// or NaN coordinate, or a router failure, yields the unknown estimate.
func (e *Evaluator) Evaluate(ctx context.Context, origin, destination *model.Coordinate, departure time.Time) model.RouteEstimate {
	if origin == nil || destination == nil || !origin.Valid() || !destination.Valid() {
		return model.UnknownRouteEstimate()
	}
	est, err := e.router.Route(ctx, *origin, *destination, departure)
	if err != nil {
		return model.UnknownRouteEstimate()
	}
	return est
}

// Close releases the underlying router.
func (e *Evaluator) Close() error { return e.router.Close() }
