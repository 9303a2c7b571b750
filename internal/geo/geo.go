// Package geo provides the distance and walking-time primitives the planner
// consumes. The planner only depends on the plan.Geo interface; Calculator is
// the implementation wired in by the server and the CLI.
package geo

import (
	"math"
	"strings"

	"github.com/pkordes/wayfarer/internal/domain"
)

const earthRadiusMeters = 6371000.0

// Walking speeds in metres per minute. Old-city lanes are slow going.
const (
	defaultWalkSpeed = 80.0
	medinaWalkSpeed  = 60.0
)

// Calculator implements great-circle geometry and walking estimates.
// The zero value is ready to use.
type Calculator struct{}

// DistanceMeters returns the haversine distance between a and b.
func (Calculator) DistanceMeters(a, b domain.Coordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// BearingDegrees returns the initial bearing from a to b, 0..360 clockwise
// from north.
func (Calculator) BearingDegrees(a, b domain.Coordinate) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLon := radians(b.Lon - a.Lon)
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// EstimateWalkMinutes converts a straight-line distance into whole walking
// minutes for the region, rounding up. Any positive distance costs at least
// one minute.
func (Calculator) EstimateWalkMinutes(meters float64, region string) int {
	if meters <= 0 {
		return 0
	}
	speed := defaultWalkSpeed
	if strings.Contains(strings.ToLower(region), "medina") {
		speed = medinaWalkSpeed
	}
	return int(math.Ceil(meters / speed))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
