package models

import "maarga.arasubus.org/internal/routing"

// Location is a stop location as returned to API clients.
type Location struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// LocationsResponse is the payload of a location listing.
type LocationsResponse struct {
	List []Location `json:"list"`
}

func NewLocation(loc routing.Location) Location {
	return Location{ID: loc.ID, Name: loc.Name, Lat: loc.Lat, Lon: loc.Lon}
}

func NewLocationsResponse(locations []routing.Location) LocationsResponse {
	list := make([]Location, len(locations))
	for i, loc := range locations {
		list[i] = NewLocation(loc)
	}
	return LocationsResponse{List: list}
}
