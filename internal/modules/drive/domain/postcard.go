package domain

import (
	"time"

	"focusdrive/internal/platform/geo"
)

// Postcard is the journal souvenir for a completed drive.
type Postcard struct {
	SessionID       string
	RouteID         string
	DestinationName string
	Coordinate      geo.Coordinate
	VehicleName     string
	Miles           float64
	Minutes         int
	Rating          int
	EarnedAt        time.Time
}

func PostcardFor(s Session, destination geo.Coordinate) Postcard {
	return Postcard{
		SessionID:       s.ID,
		RouteID:         s.RouteID,
		DestinationName: s.DestinationName,
		Coordinate:      destination,
		VehicleName:     s.VehicleName,
		Miles:           s.Telemetry.DistanceProgress,
		Minutes:         s.DurationMinutes,
		Rating:          s.FuelEfficiency,
		EarnedAt:        s.EndedAt,
	}
}
