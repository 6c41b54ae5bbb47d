package models

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

var ErrMissingCoordinate = errors.New("missing coordinate")

// RawCoord is a coordinate exactly as the dataset supplied it. It is only
// coerced to a number when a distance is computed.
type RawCoord string

// Float64 parses the coordinate, rejecting empty, non-numeric and non-finite values.
func (r RawCoord) Float64() (float64, error) {
	s := strings.TrimSpace(string(r))
	if s == "" {
		return 0, ErrMissingCoordinate
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite coordinate %q", s)
	}
	return f, nil
}

func CoordOf(f float64) RawCoord {
	return RawCoord(strconv.FormatFloat(f, 'f', -1, 64))
}

// Hospital is one facility row of the hospitals dataset. Empty strings and
// nil counters mean the source had no value.
type Hospital struct {
	Name                   string
	Type                   string
	Latitude               RawCoord
	Longitude              RawCoord
	ICUBedsAvailable       *int
	EmergencyBedsAvailable *int
	AmbulancesAvailable    *int
}

func (h *Hospital) Coordinates() (Coordinates, error) {
	lat, err := h.Latitude.Float64()
	if err != nil {
		return Coordinates{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := h.Longitude.Float64()
	if err != nil {
		return Coordinates{}, fmt.Errorf("longitude: %w", err)
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

// LogValue renders the raw row so skipped records can be inspected in logs.
func (h Hospital) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("hospital_name", h.Name),
		slog.String("type", h.Type),
		slog.String("lat", string(h.Latitude)),
		slog.String("lon", string(h.Longitude)),
		slog.Any("icu_beds_available", derefOrNil(h.ICUBedsAvailable)),
		slog.Any("emergency_beds_available", derefOrNil(h.EmergencyBedsAvailable)),
		slog.Any("ambulances_available", derefOrNil(h.AmbulancesAvailable)),
	)
}

func IntPtr(v int) *int {
	return &v
}

func derefOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
