package dto

import "encoding/json"

// GeocodeSuggestion mirrors the fields the autocomplete consumer uses
// from a Nominatim search result.
type GeocodeSuggestion struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
}

type GeocodeResponse struct {
	Suggestions []GeocodeSuggestion `json:"suggestions"`
}
