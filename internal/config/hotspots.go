package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mr1hm/go-health-hotspots/internal/models"
)

type hotspotEntry struct {
	Name string  `koanf:"name"`
	Lat  float64 `koanf:"lat"`
	Lon  float64 `koanf:"lon"`
}

// LoadHotspots reads an ordered hotspot list from a YAML file:
//
//	hotspots:
//	  - name: Delhi
//	    lat: 28.70
//	    lon: 77.10
//
// List order is kept. Validation is left to hotspot.NewRegistry.
func LoadHotspots(path string) ([]models.Hotspot, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load hotspots file %s: %w", path, err)
	}

	var entries []hotspotEntry
	if err := k.Unmarshal("hotspots", &entries); err != nil {
		return nil, fmt.Errorf("failed to decode hotspots in %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no hotspots defined in %s", path)
	}

	hotspots := make([]models.Hotspot, 0, len(entries))
	for _, e := range entries {
		hotspots = append(hotspots, models.Hotspot{
			Name:        e.Name,
			Coordinates: models.Coordinates{Latitude: e.Lat, Longitude: e.Lon},
		})
	}
	return hotspots, nil
}
