package domain

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	AverageSpeedMPH  = 60.0
	CruiseSpeedMin   = 55.0
	CruiseSpeedMax   = 70.0
	MinSpeed         = 0.0
	MaxSpeed         = 80.0
	InitialBaseSpeed = 60.0

	// Fraction of the gap to a new cruise target closed at each retarget.
	speedSmoothing   = 0.3
	speedFluctuation = 2.0
	retargetMin      = 2.0
	retargetMax      = 3.0

	LowFuelThreshold      = 0.2
	CriticalFuelThreshold = 0.1
	LowFuelEverySeconds   = 30.0
	SaveEveryTicks        = 10
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusActive, StatusPaused, StatusCompleted, StatusAbandoned:
		return s, nil
	default:
		return "", fmt.Errorf("unknown session status: %s", raw)
	}
}

// Open reports whether the session still accepts ticks or a resume.
func (s Status) Open() bool {
	return s == StatusActive || s == StatusPaused
}

// Telemetry is the progress state mutated on every tick. Times are simulated
// seconds since the session started.
type Telemetry struct {
	ElapsedSeconds   float64
	DistanceProgress float64
	Fuel             float64
	Speed            float64
	BaseSpeed        float64
	LastRetarget     float64
	RetargetAfter    float64
	LastLowFuel      float64
	Ticks            int
}

type Session struct {
	ID               string
	StartedAt        time.Time
	EndedAt          time.Time
	VehicleID        string
	VehicleName      string
	RouteID          string
	DestinationName  string
	TargetDistance   float64
	EstimatedSeconds float64
	DurationMinutes  int
	Status           Status
	FuelEfficiency   int
	FocusQuality     float64
	BreaksTaken      int
	Telemetry        Telemetry
	UpdatedAt        time.Time
}

// New returns an active session with full fuel and the cruise walk reset.
func New(id string, startedAt time.Time, vehicleID, vehicleName, routeID, destination string, distanceMiles float64) Session {
	return Session{
		ID:               id,
		StartedAt:        startedAt,
		VehicleID:        vehicleID,
		VehicleName:      vehicleName,
		RouteID:          routeID,
		DestinationName:  destination,
		TargetDistance:   distanceMiles,
		EstimatedSeconds: EstimatedSeconds(distanceMiles),
		Status:           StatusActive,
		FuelEfficiency:   5,
		FocusQuality:     1,
		Telemetry: Telemetry{
			Fuel:          1,
			BaseSpeed:     InitialBaseSpeed,
			RetargetAfter: retargetMin,
		},
		UpdatedAt: startedAt,
	}
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if s.VehicleID == "" || s.RouteID == "" {
		return fmt.Errorf("session vehicle and route are required")
	}
	if _, err := ParseStatus(string(s.Status)); err != nil {
		return err
	}
	if s.Telemetry.Fuel < 0 || s.Telemetry.Fuel > 1 {
		return fmt.Errorf("fuel must be within [0,1]")
	}
	return nil
}

// EstimatedSeconds is the drive time for miles at AverageSpeedMPH.
func EstimatedSeconds(miles float64) float64 {
	return miles * 3600 / AverageSpeedMPH
}

// TickResult tells the owner what happened during one Advance.
type TickResult struct {
	// Finished is set when progress reached 1 or fuel ran out.
	Finished bool
	LowFuel  bool
	Save     bool
}

// Advance moves an active session forward by dt simulated seconds. It does
// not finalize the session; callers end it when Finished is reported.
func (s *Session) Advance(dt float64, rng *rand.Rand) TickResult {
	if s.Status != StatusActive || dt <= 0 {
		return TickResult{}
	}
	t := &s.Telemetry
	prevElapsed := t.ElapsedSeconds
	t.ElapsedSeconds += dt
	t.Ticks++

	progress := s.Progress()
	t.DistanceProgress = math.Max(0, math.Min(s.TargetDistance, s.TargetDistance*progress))
	t.Fuel = math.Max(0, 1-progress)
	s.advanceSpeed(rng)

	result := TickResult{Save: t.Ticks%SaveEveryTicks == 0}
	if progress >= 1 || t.Fuel <= 0 {
		result.Finished = true
		return result
	}
	if s.FuelLow() && crossed(prevElapsed, t.ElapsedSeconds, LowFuelEverySeconds) {
		t.LastLowFuel = t.ElapsedSeconds
		result.LowFuel = true
	}
	return result
}

// Progress is elapsed over estimated duration. A route without distance is
// complete as soon as it has been ticked.
func (s Session) Progress() float64 {
	if s.TargetDistance <= 0 || s.EstimatedSeconds <= 0 {
		if s.Telemetry.ElapsedSeconds > 0 {
			return 1
		}
		return 0
	}
	return s.Telemetry.ElapsedSeconds / s.EstimatedSeconds
}

func (s *Session) advanceSpeed(rng *rand.Rand) {
	t := &s.Telemetry
	if t.ElapsedSeconds-t.LastRetarget >= t.RetargetAfter {
		target := CruiseSpeedMin + rng.Float64()*(CruiseSpeedMax-CruiseSpeedMin)
		t.BaseSpeed += (target - t.BaseSpeed) * speedSmoothing
		t.LastRetarget = t.ElapsedSeconds
		t.RetargetAfter = retargetMin + rng.Float64()*(retargetMax-retargetMin)
	}
	fluctuation := (rng.Float64()*2 - 1) * speedFluctuation
	t.Speed = math.Max(MinSpeed, math.Min(MaxSpeed, t.BaseSpeed+fluctuation))
}

// crossed reports whether a multiple of every lies in (from, to].
func crossed(from, to, every float64) bool {
	return math.Floor(to/every) > math.Floor(from/every)
}

func (s *Session) Pause(at time.Time) {
	s.Status = StatusPaused
	s.BreaksTaken++
	s.UpdatedAt = at
}

func (s *Session) Resume(at time.Time) {
	s.Status = StatusActive
	s.UpdatedAt = at
}

// Finish closes the session and computes its ratings from the remaining fuel.
func (s *Session) Finish(completed bool, at time.Time) {
	s.EndedAt = at
	s.UpdatedAt = at
	s.DurationMinutes = int(s.Telemetry.ElapsedSeconds / 60)
	s.FuelEfficiency = Rating(completed, s.Telemetry.Fuel)
	s.FocusQuality = FocusQuality(completed, s.Telemetry.Fuel)
	if completed {
		s.Status = StatusCompleted
	} else {
		s.Status = StatusAbandoned
	}
}

// Rating is the 1-5 fuel efficiency score.
func Rating(completed bool, fuel float64) int {
	if !completed {
		return max(1, int(math.Floor(fuel*5)))
	}
	switch {
	case fuel >= 0.8:
		return 5
	case fuel >= 0.6:
		return 4
	case fuel >= 0.4:
		return 3
	case fuel >= 0.2:
		return 2
	default:
		return 1
	}
}

func FocusQuality(completed bool, fuel float64) float64 {
	if completed {
		return fuel
	}
	return fuel * 0.5
}

func (s Session) Perfect() bool {
	return s.Status == StatusCompleted && s.FuelEfficiency == 5
}

func (s Session) TimeRemaining() time.Duration {
	remaining := math.Max(0, s.EstimatedSeconds-s.Telemetry.ElapsedSeconds)
	return time.Duration(remaining * float64(time.Second))
}

func (s Session) ProgressPercent() int {
	if s.TargetDistance <= 0 {
		if s.Telemetry.ElapsedSeconds > 0 {
			return 100
		}
		return 0
	}
	return int(s.Telemetry.DistanceProgress / s.TargetDistance * 100)
}

func (s Session) DistanceRemaining() float64 {
	return math.Max(0, s.TargetDistance-s.Telemetry.DistanceProgress)
}

func (s Session) FuelCritical() bool {
	return s.Telemetry.Fuel <= CriticalFuelThreshold
}

func (s Session) FuelLow() bool {
	return s.Telemetry.Fuel <= LowFuelThreshold && !s.FuelCritical()
}
