// Package route computes distance and duration estimates for a dispatch
// requirement's origin/destination pair. Routing providers are modelled as an
// explicit Router with its own lifecycle instead of ambient global state, so
// the provider is injectable and mockable.
package route

import (
	"context"
	"time"

	"github.com/ambuflow/crewmatch/core/model"
)

// Router produces a route estimate between two resolved coordinates. External
// providers (e.g. a mapping API) implement this interface; Close releases any
// client resources they hold.
type Router interface {
	Route(ctx context.Context, origin, destination model.Coordinate, departure time.Time) (model.RouteEstimate, error)
	Close() error
}
