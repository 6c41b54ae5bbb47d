package api

import (
	"github.com/mr1hm/go-health-hotspots/internal/analytics"
	"github.com/mr1hm/go-health-hotspots/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(hotspots []models.Hotspot) FeatureCollection {
	features := make([]Feature, 0, len(hotspots))

	for _, h := range hotspots {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{h.Coordinates.Longitude, h.Coordinates.Latitude},
			},
			Properties: map[string]any{
				"name":  h.Name,
				"count": analytics.HotspotCount(h.Name),
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
