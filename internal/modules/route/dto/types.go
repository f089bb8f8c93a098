package dto

import "time"

type Place struct {
	Name string
	Lat  float64
	Lon  float64
}

// PlanInput names a catalog destination or supplies a custom one. Origin
// falls back to the configured home origin when nil.
type PlanInput struct {
	Destination string
	Custom      *Place
	Origin      *Place
	RouteType   string
}

type RouteOutput struct {
	ID               string
	OriginName       string
	OriginLat        float64
	OriginLon        float64
	DestinationName  string
	DestinationLat   float64
	DestinationLon   float64
	DistanceMiles    float64
	EstimatedMinutes int
	RouteType        string
	Completed        bool
	CompletionDate   time.Time
	TimesCompleted   int
	CreatedAt        time.Time
}

type DestinationOutput struct {
	Name          string
	Lat           float64
	Lon           float64
	Category      string
	CategoryLabel string
	Description   string
	DistanceMiles float64
}

type NearbyInput struct {
	Origin      *Place
	RadiusMiles float64
}

type ListRoutesInput struct {
	CompletedOnly bool
	Destination   string
}

type StatsOutput struct {
	CompletedRoutes    int
	TotalDistanceMiles float64
	UniqueDestinations int
}
