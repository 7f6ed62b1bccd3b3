package dashboard

import "time"

// FeatureCollection is a GeoJSON FeatureCollection of occurrence points.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON Point feature.
type Feature struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// Geometry holds GeoJSON coordinates in [lon, lat] order.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// FeatureProperties are shown in the map popup.
type FeatureProperties struct {
	Classification string `json:"classificacao"`
	Type           string `json:"tipo"`
	City           string `json:"cidade"`
	Date           string `json:"data"`
}

// GeoJSON converts map points into a FeatureCollection. An empty input
// yields an empty, non-null features array.
func GeoJSON(points []Point) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(points))}
	for _, p := range points {
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			ID:   p.ID,
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{p.Lon, p.Lat},
			},
			Properties: FeatureProperties{
				Classification: p.Classification,
				Type:           p.Type,
				City:           p.City,
				Date:           p.Date.Format(time.DateTime),
			},
		})
	}
	return fc
}
