package models

import (
	"maarga.arasubus.org/internal/routing"
)

// RouteLeg is one trip segment of an itinerary as returned to API clients.
type RouteLeg struct {
	TripID           string `json:"tripId"`
	TripNumber       string `json:"tripNumber"`
	TripName         string `json:"tripName"`
	BoardLocationID  string `json:"boardLocationId"`
	AlightLocationID string `json:"alightLocationId"`
	BoardTime        string `json:"boardTime"`
	AlightTime       string `json:"alightTime"`
}

// RouteOption is one ranked itinerary as returned to API clients.
type RouteOption struct {
	Legs                 []RouteLeg `json:"legs"`
	WaitTimesMinutes     []int      `json:"waitTimesMinutes"`
	TotalDurationMinutes int        `json:"totalDurationMinutes"`
	TransferCount        int        `json:"transferCount"`
}

// RouteOptionsResponse is the payload of a route search.
type RouteOptionsResponse struct {
	List      []RouteOption `json:"list"`
	Truncated bool          `json:"truncated"`
}

// NewRouteOption converts an engine itinerary into its API shape.
func NewRouteOption(option routing.RouteOption) RouteOption {
	legs := make([]RouteLeg, len(option.Legs))
	for i, leg := range option.Legs {
		legs[i] = RouteLeg{
			TripID:           leg.Trip.ID,
			TripNumber:       leg.Trip.Number,
			TripName:         leg.Trip.Name,
			BoardLocationID:  leg.BoardStop().LocationID,
			AlightLocationID: leg.AlightStop().LocationID,
			BoardTime:        leg.BoardTime().String(),
			AlightTime:       leg.AlightTime().String(),
		}
	}

	return RouteOption{
		Legs:                 legs,
		WaitTimesMinutes:     option.WaitMinutes,
		TotalDurationMinutes: option.TotalMinutes,
		TransferCount:        option.Transfers(),
	}
}

// NewRouteOptionsResponse converts a full search result.
func NewRouteOptionsResponse(result routing.Result) RouteOptionsResponse {
	list := make([]RouteOption, len(result.Options))
	for i, option := range result.Options {
		list[i] = NewRouteOption(option)
	}
	return RouteOptionsResponse{List: list, Truncated: result.Truncated}
}
