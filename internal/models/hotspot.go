package models

import "math"

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether both components are finite and inside the
// geographic range (lat in [-90,90], lon in [-180,180]).
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Hotspot is a canonical named point of interest.
type Hotspot struct {
	Name        string
	Coordinates Coordinates
}
