// Package routing provides routing-provider implementations of the core
// route.Router interface. Provider clients carry explicit lifecycle state
// instead of module-level singletons, so they can be injected and mocked.
package routing

import (
	"context"
	"fmt"
	"math"
	"time"

	"googlemaps.github.io/maps"

	"github.com/ambuflow/crewmatch/core/model"
	"github.com/ambuflow/crewmatch/infra/logger"
)

// Config defines routing provider settings.
type Config struct {
	// Provider selects "heuristic" (default) or "google".
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Region   string `json:"region"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Provider == "" {
		c.Provider = "heuristic"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Provider {
	case "heuristic":
		return nil
	case "google":
		if c.APIKey == "" {
			return fmt.Errorf("google routing requires an api key")
		}
		return nil
	default:
		return fmt.Errorf("unknown routing provider %s", c.Provider)
	}
}

// GoogleRouter implements route.Router using the Google Maps Directions API.
// Traffic severity is derived from the ratio between the in-traffic and
// nominal durations using the same delay-percentage buckets as the heuristic.
type GoogleRouter struct {
	client *maps.Client
	region string
	log    logger.Logger
}

// NewGoogleRouter creates a router holding its own Maps client.
func NewGoogleRouter(cfg Config) (*GoogleRouter, error) {
	client, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &GoogleRouter{client: client, region: cfg.Region, log: logger.New("google-router")}, nil
}

// Route queries directions with a departure time and converts the best route
// into a RouteEstimate.
func (r *GoogleRouter) Route(ctx context.Context, origin, destination model.Coordinate, departure time.Time) (model.RouteEstimate, error) {
	req := &maps.DirectionsRequest{
		Origin:        fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude),
		Destination:   fmt.Sprintf("%f,%f", destination.Latitude, destination.Longitude),
		Mode:          maps.TravelModeDriving,
		DepartureTime: fmt.Sprintf("%d", departure.Unix()),
		Region:        r.region,
		Alternatives:  true,
	}
	routes, _, err := r.client.Directions(ctx, req)
	if err != nil {
		return model.RouteEstimate{}, fmt.Errorf("directions: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return model.RouteEstimate{}, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	nominal := leg.Duration.Minutes()
	adjusted := nominal
	if leg.DurationInTraffic > 0 {
		adjusted = leg.DurationInTraffic.Minutes()
	}
	delay := adjusted - nominal
	delayPct := 0.0
	if nominal > 0 {
		delayPct = delay / nominal * 100
	}

	severity := model.TrafficLow
	switch {
	case delayPct > 50:
		severity = model.TrafficHigh
	case delayPct > 25:
		severity = model.TrafficMedium
	}

	return model.RouteEstimate{
		DistanceKm:          float64(leg.Distance.Meters) / 1000,
		NominalDurationMin:  nominal,
		AdjustedDurationMin: adjusted,
		Traffic: model.TrafficSample{
			Severity:                 severity,
			DelayMinutes:             int(math.Round(delay)),
			AlternateRoutesAvailable: len(routes) > 1,
			// Provider durations are measured rather than assumed.
			Confidence: 0.99,
		},
	}, nil
}

// Close implements route.Router. The Maps client holds no connections that
// need teardown, but the method anchors the lifecycle for other providers.
func (r *GoogleRouter) Close() error { return nil }
