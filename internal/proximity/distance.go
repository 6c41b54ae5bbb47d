// Package proximity ranks hospital records by great-circle distance from an
// origin and produces JSON-safe views of the result.
package proximity

import (
	"github.com/jftuga/geodist"

	"github.com/mr1hm/go-health-hotspots/internal/models"
)

// DefaultRadiusKm is the fixed search radius of the hospitals endpoint.
const DefaultRadiusKm = 50.0

const (
	// MeanEarthRadiusKm is the sphere radius all distances are reported on.
	MeanEarthRadiusKm = 6371.0

	// geodistRadiusKm is the equatorial radius geodist.HaversineDistance
	// hard-codes (6378100 m).
	geodistRadiusKm = 6378.1
)

// Distance is the haversine distance in kilometres between a and b on a
// sphere of radius MeanEarthRadiusKm. Haversine distance is linear in the
// radius, so geodist's equatorial result is rescaled exactly.
func Distance(a, b models.Coordinates) float64 {
	_, km := geodist.HaversineDistance(
		geodist.Coord{Lat: a.Latitude, Lon: a.Longitude},
		geodist.Coord{Lat: b.Latitude, Lon: b.Longitude},
	)
	return km * (MeanEarthRadiusKm / geodistRadiusKm)
}
