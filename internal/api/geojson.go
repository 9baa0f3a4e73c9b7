package api

import (
	"github.com/mr1hm/go-evacuation-tracker/internal/models"
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

// toGeoJSON renders sites as map markers. GeoJSON orders coordinates lng, lat.
func toGeoJSON(sites []models.Site) FeatureCollection {
	features := make([]Feature, 0, len(sites))

	for _, s := range sites {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{s.Longitude, s.Latitude},
			},
			Properties: map[string]any{
				"id":         s.ID,
				"name":       deref(s.Name),
				"type":       deref(s.Type),
				"capacity":   s.Capacity,
				"facilities": deref(s.Facilities),
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
