package hotspot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mr1hm/go-health-hotspots/internal/models"
)

var (
	ErrEmptyRegistry      = errors.New("hotspot registry is empty")
	ErrEmptyName          = errors.New("hotspot name is empty")
	ErrDuplicateName      = errors.New("duplicate hotspot name")
	ErrInvalidCoordinates = errors.New("invalid hotspot coordinates")
)

// Registry is an ordered, immutable set of hotspots. Declaration order is
// the tie-break order used by matching, so it is kept as a slice.
type Registry struct {
	hotspots []models.Hotspot
	names    []string
}

func NewRegistry(hotspots []models.Hotspot) (*Registry, error) {
	if len(hotspots) == 0 {
		return nil, ErrEmptyRegistry
	}

	seen := make(map[string]struct{}, len(hotspots))
	r := &Registry{
		hotspots: make([]models.Hotspot, 0, len(hotspots)),
		names:    make([]string, 0, len(hotspots)),
	}
	for i, h := range hotspots {
		if strings.TrimSpace(h.Name) == "" {
			return nil, fmt.Errorf("hotspot %d: %w", i, ErrEmptyName)
		}
		if !h.Coordinates.Valid() {
			return nil, fmt.Errorf("hotspot %q (%v, %v): %w", h.Name, h.Coordinates.Latitude, h.Coordinates.Longitude, ErrInvalidCoordinates)
		}
		folded := strings.ToLower(h.Name)
		if _, dup := seen[folded]; dup {
			return nil, fmt.Errorf("hotspot %q: %w", h.Name, ErrDuplicateName)
		}
		seen[folded] = struct{}{}

		r.hotspots = append(r.hotspots, h)
		r.names = append(r.names, h.Name)
	}
	return r, nil
}

// Default returns the registry built from DefaultHotspots.
func Default() *Registry {
	r, err := NewRegistry(DefaultHotspots())
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultHotspots is the built-in hotspot list in registry order.
func DefaultHotspots() []models.Hotspot {
	return []models.Hotspot{
		{Name: "Kamrup", Coordinates: models.Coordinates{Latitude: 26.14, Longitude: 91.73}},
		{Name: "Nagaon", Coordinates: models.Coordinates{Latitude: 26.35, Longitude: 92.68}},
		{Name: "Jorhat", Coordinates: models.Coordinates{Latitude: 26.75, Longitude: 94.22}},
		{Name: "Sector 14, Rewari", Coordinates: models.Coordinates{Latitude: 28.19, Longitude: 76.64}},
		{Name: "Model Town, Rewari", Coordinates: models.Coordinates{Latitude: 28.20, Longitude: 76.62}},
		{Name: "Delhi", Coordinates: models.Coordinates{Latitude: 28.70, Longitude: 77.10}},
		{Name: "Dehradun", Coordinates: models.Coordinates{Latitude: 30.3165, Longitude: 78.0322}},
	}
}

// Names returns a copy of the hotspot names in registry order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Hotspots returns a copy of the hotspots in registry order.
func (r *Registry) Hotspots() []models.Hotspot {
	out := make([]models.Hotspot, len(r.hotspots))
	copy(out, r.hotspots)
	return out
}

// Lookup finds a hotspot by its canonical name (exact, case-sensitive).
func (r *Registry) Lookup(name string) (models.Hotspot, bool) {
	for _, h := range r.hotspots {
		if h.Name == name {
			return h, true
		}
	}
	return models.Hotspot{}, false
}

func (r *Registry) Len() int {
	return len(r.hotspots)
}
