package domain

import (
	"context"
	"log/slog"
)

// Geocoding outcomes reported by EnrichWithGeocoding.
const (
	GeoSkipped  = "skipped"  // coordinates already valid, or nothing to look up
	GeoResolved = "resolved" // coordinates filled from the geocoder
	GeoEmpty    = "empty"    // geocoder found no match
	GeoFailed   = "failed"   // geocoder returned an error
)

// EnrichWithGeocoding fills missing coordinates from the occurrence city and
// state. Occurrences with a valid location, without a city, or with a nil
// geocoder are returned unchanged. Geocoding errors never fail the row.
func EnrichWithGeocoding(ctx context.Context, o Occurrence, state string, geocoder Geocoder, logger *slog.Logger) (Occurrence, string) {
	if geocoder == nil || o.HasValidLocation() || o.City == "" {
		return o, GeoSkipped
	}

	result, err := geocoder.ForwardGeocode(ctx, o.City, state)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"occurrence_id", o.ID,
			"city", o.City,
			"state", state,
			"error", err,
		)
		return o, GeoFailed
	}
	if result.Lat == 0 && result.Lon == 0 {
		return o, GeoEmpty
	}

	lat, lon := result.Lat, result.Lon
	o.Latitude = &lat
	o.Longitude = &lon
	return o, GeoResolved
}
