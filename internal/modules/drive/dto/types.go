package dto

import "time"

type StartInput struct {
	VehicleID string
	RouteID   string
}

type EndInput struct {
	Completed bool
}

type ListInput struct {
	// Status filters by session status; empty lists every session.
	Status string
	Limit  int
}

type SessionOutput struct {
	ID               string
	StartedAt        time.Time
	EndedAt          time.Time
	VehicleID        string
	VehicleName      string
	RouteID          string
	DestinationName  string
	TargetDistance   float64
	DurationMinutes  int
	Status           string
	FuelEfficiency   int
	FocusQuality     float64
	BreaksTaken      int
	ElapsedSeconds   float64
	DistanceProgress float64
	Fuel             float64
	Speed            float64
}

// Snapshot is the observable drive state. Open is false when no session is
// active or paused; Session then holds the most recently finished one, if any.
type Snapshot struct {
	Open              bool
	Running           bool
	Session           SessionOutput
	TimeRemaining     time.Duration
	ProgressPercent   int
	DistanceRemaining float64
	FuelLow           bool
	FuelCritical      bool
	// Ended is set on the snapshot produced by the tick that auto-completed
	// the session.
	Ended *EndOutput
}

type EndOutput struct {
	Session         SessionOutput
	PostcardPath    string
	RouteCompleted  bool
	NewlyUnlocked   []string
	VehicleMiles    float64
	FleetMilesAfter float64
}

type PostcardOutput struct {
	Path            string
	SessionID       string
	RouteID         string
	DestinationName string
	Lat             float64
	Lon             float64
	VehicleName     string
	Miles           float64
	Minutes         int
	Rating          int
	EarnedAt        time.Time
	// Markdown is the note body without frontmatter.
	Markdown string
}
