// Package geo contains pure great-circle computations used by the route
// evaluator. All functions are deterministic and NaN inputs propagate to the
// result.
package geo

import (
	"math"

	"github.com/ambuflow/crewmatch/core/model"
)

// earthRadiusKm is the mean Earth radius used for haversine distances.
const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance in kilometres
// between two coordinates given in decimal degrees.
func DistanceKm(a, b model.Coordinate) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	rLat1 := radians(a.Latitude)
	rLat2 := radians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// BearingDeg returns the initial bearing from a to b in degrees, normalised
// to [0,360).
func BearingDeg(a, b model.Coordinate) float64 {
	rLat1 := radians(a.Latitude)
	rLat2 := radians(b.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	y := math.Sin(dLng) * math.Cos(rLat2)
	x := math.Cos(rLat1)*math.Sin(rLat2) - math.Sin(rLat1)*math.Cos(rLat2)*math.Cos(dLng)
	deg := math.Atan2(y, x) * 180.0 / math.Pi
	return math.Mod(deg+360.0, 360.0)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
