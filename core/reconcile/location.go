// ABOUTME: Location extraction and validation for reconciliation
// ABOUTME: A location only exists when both coordinates are present, numeric and non-zero

package reconcile

import (
	"strconv"

	"natureshare-pipeline/core/domain"
)

// Location is a validated latitude/longitude pair, rounded to 6 decimals.
type Location struct {
	Latitude  float64
	Longitude float64
}

// GetValidLocation parses provider-payload coordinate strings. Zero, missing
// or non-numeric coordinates yield no location at all; a location never
// defaults to (0,0).
func GetValidLocation(latitude, longitude string) *Location {
	lat, errLat := strconv.ParseFloat(latitude, 64)
	lon, errLon := strconv.ParseFloat(longitude, 64)
	if errLat != nil || errLon != nil {
		return nil
	}
	return locationOf(lat, lon)
}

// GetValidLocationFloat validates an already-numeric coordinate pair.
func GetValidLocationFloat(latitude, longitude float64) *Location {
	return locationOf(latitude, longitude)
}

// locationOf validates and rounds a coordinate pair.
func locationOf(lat, lon float64) *Location {
	if !domain.ValidCoords(lat, lon) {
		return nil
	}
	return &Location{
		Latitude:  domain.RoundCoord(lat),
		Longitude: domain.RoundCoord(lon),
	}
}

// locationFromPtrs validates a pair of optional coordinates.
func locationFromPtrs(lat, lon *float64) *Location {
	if lat == nil || lon == nil {
		return nil
	}
	return locationOf(*lat, *lon)
}
