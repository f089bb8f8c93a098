package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"focusdrive/internal/modules/drive/domain"
	"focusdrive/internal/modules/drive/dto"
	drivein "focusdrive/internal/modules/drive/port/in"
	driveout "focusdrive/internal/modules/drive/port/out"
	"focusdrive/internal/modules/drive/service"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/platform/logging"
)

const (
	eventEngineStart   = "engine_start"
	eventArrival       = "arrival"
	eventLowFuel       = "low_fuel"
	eventAmbientStart  = "ambient_start"
	eventAmbientPause  = "ambient_pause"
	eventAmbientResume = "ambient_resume"
	eventStopAll       = "stop_all"
)

type Deps struct {
	Garage   driveout.Garage
	Routes   driveout.Routes
	Shield   driveout.Shield
	Feedback driveout.Feedback
	Journal  driveout.Journal
	Logger   *log.Logger
}

// Interactor serializes every call; UI commands and the ticker run on
// separate goroutines.
type Interactor struct {
	svc  *service.DriveService
	deps Deps

	mu      sync.Mutex
	current *domain.Session
	last    *domain.Session

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan dto.Snapshot
}

func NewInteractor(svc *service.DriveService, deps Deps) drivein.Usecase {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	return &Interactor{svc: svc, deps: deps, subs: map[int]chan dto.Snapshot{}}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.recover(ctx); err != nil {
		return dto.Snapshot{}, err
	}
	if i.current != nil {
		return dto.Snapshot{}, apperrors.ErrActiveSessionExists
	}

	vehicle, err := i.deps.Garage.Vehicle(ctx, input.VehicleID)
	if err != nil {
		return dto.Snapshot{}, err
	}
	if !vehicle.Unlocked {
		return dto.Snapshot{}, apperrors.ErrVehicleLocked
	}
	route, err := i.deps.Routes.Route(ctx, input.RouteID)
	if err != nil {
		return dto.Snapshot{}, err
	}
	session, err := i.svc.Begin(ctx, vehicle, route)
	if err != nil {
		return dto.Snapshot{}, err
	}
	i.current = &session

	i.play(ctx, eventEngineStart, vehicle.Type)
	i.play(ctx, eventAmbientStart, "")
	if err := i.deps.Garage.RecordUse(ctx, vehicle.ID); err != nil {
		i.deps.Logger.Warn("record vehicle use failed", "vehicle", vehicle.ID, "err", err)
	}
	if i.deps.Shield != nil {
		if err := i.deps.Shield.StartSessionBlocking(ctx); err != nil {
			i.deps.Logger.Warn("session shielding failed", "err", err)
		}
	}
	return i.publish(nil), nil
}

func (i *Interactor) Pause(ctx context.Context) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.requireOpen(ctx); err != nil {
		return dto.Snapshot{}, err
	}
	if err := i.svc.Pause(ctx, i.current); err != nil {
		return dto.Snapshot{}, err
	}
	i.play(ctx, eventAmbientPause, "")
	return i.publish(nil), nil
}

func (i *Interactor) Resume(ctx context.Context) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.requireOpen(ctx); err != nil {
		return dto.Snapshot{}, err
	}
	if err := i.svc.Resume(ctx, i.current); err != nil {
		return dto.Snapshot{}, err
	}
	i.play(ctx, eventAmbientResume, "")
	return i.publish(nil), nil
}

func (i *Interactor) End(ctx context.Context, input dto.EndInput) (dto.EndOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.requireOpen(ctx); err != nil {
		return dto.EndOutput{}, err
	}
	out := i.end(ctx, input.Completed)
	i.publish(&out)
	return out, nil
}

func (i *Interactor) Tick(ctx context.Context) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.requireOpen(ctx); err != nil {
		return dto.Snapshot{}, err
	}
	if i.current.Status != domain.StatusActive {
		return dto.Snapshot{}, apperrors.ErrSessionNotRunning
	}
	result := i.svc.Advance(ctx, i.current)
	if result.LowFuel {
		i.play(ctx, eventLowFuel, "")
	}
	if result.Finished {
		out := i.end(ctx, true)
		return i.publish(&out), nil
	}
	return i.publish(nil), nil
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.recover(ctx); err != nil {
		return dto.Snapshot{}, err
	}
	return i.snapshot(nil), nil
}

func (i *Interactor) Subscribe(buffer int) (<-chan dto.Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan dto.Snapshot, buffer)
	i.subMu.Lock()
	id := i.nextID
	i.nextID++
	i.subs[id] = ch
	i.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			i.subMu.Lock()
			delete(i.subs, id)
			i.subMu.Unlock()
			close(ch)
		})
	}
}

func (i *Interactor) ListSessions(ctx context.Context, input dto.ListInput) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.List(ctx, input.Status, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toOutput(s))
	}
	return out, nil
}

func (i *Interactor) GetSession(ctx context.Context, id string) (dto.SessionOutput, error) {
	s, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(s), nil
}

func (i *Interactor) Postcards(ctx context.Context, limit int) ([]dto.PostcardOutput, error) {
	if i.deps.Journal == nil {
		return []dto.PostcardOutput{}, nil
	}
	entries, err := i.deps.Journal.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PostcardOutput, 0, len(entries))
	for _, e := range entries {
		p := e.Postcard
		out = append(out, dto.PostcardOutput{
			Path:            e.Path,
			SessionID:       p.SessionID,
			RouteID:         p.RouteID,
			DestinationName: p.DestinationName,
			Lat:             p.Coordinate.Lat,
			Lon:             p.Coordinate.Lon,
			VehicleName:     p.VehicleName,
			Miles:           p.Miles,
			Minutes:         p.Minutes,
			Rating:          p.Rating,
			EarnedAt:        p.EarnedAt,
			Markdown:        e.Body,
		})
	}
	return out, nil
}

// end finalizes the current session and runs the side effects of arriving or
// giving up. Only the session record is required to succeed.
func (i *Interactor) end(ctx context.Context, completed bool) dto.EndOutput {
	session := i.current
	i.svc.Finish(ctx, session, completed)
	i.current = nil
	i.last = session

	i.play(ctx, eventStopAll, "")
	out := dto.EndOutput{}
	if completed {
		i.play(ctx, eventArrival, "")
	}

	mileage, err := i.deps.Garage.RecordDistance(ctx, session.VehicleID, session.Telemetry.DistanceProgress)
	if err != nil {
		i.deps.Logger.Warn("record vehicle distance failed", "vehicle", session.VehicleID, "err", err)
	} else {
		out.NewlyUnlocked = mileage.NewlyUnlocked
		out.VehicleMiles = mileage.VehicleMiles
		out.FleetMilesAfter = mileage.FleetMiles
	}

	if completed {
		if err := i.deps.Routes.MarkCompleted(ctx, session.RouteID); err != nil {
			i.deps.Logger.Warn("mark route completed failed", "route", session.RouteID, "err", err)
		} else {
			out.RouteCompleted = true
		}
		out.PostcardPath = i.writePostcard(ctx, *session)
	}

	if i.deps.Shield != nil {
		if err := i.deps.Shield.StopSessionBlocking(ctx); err != nil {
			i.deps.Logger.Warn("stop session shielding failed", "err", err)
		}
	}
	out.Session = toOutput(*session)
	return out
}

func (i *Interactor) writePostcard(ctx context.Context, session domain.Session) string {
	if i.deps.Journal == nil {
		return ""
	}
	route, err := i.deps.Routes.Route(ctx, session.RouteID)
	if err != nil {
		i.deps.Logger.Warn("postcard route lookup failed", "route", session.RouteID, "err", err)
		return ""
	}
	path, err := i.deps.Journal.WritePostcard(ctx, domain.PostcardFor(session, route.Destination))
	if err != nil {
		i.deps.Logger.Warn("postcard write failed", "session", session.ID, "err", err)
		return ""
	}
	return path
}

func (i *Interactor) requireOpen(ctx context.Context) error {
	if err := i.recover(ctx); err != nil {
		return err
	}
	if i.current == nil {
		return apperrors.ErrNoActiveSession
	}
	return nil
}

// recover loads an open session left by an earlier process.
func (i *Interactor) recover(ctx context.Context) error {
	if i.current != nil {
		return nil
	}
	session, err := i.svc.Open(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return nil
	}
	if err != nil {
		return err
	}
	i.current = &session
	return nil
}

func (i *Interactor) play(ctx context.Context, event, variant string) {
	if i.deps.Feedback != nil {
		i.deps.Feedback.Play(ctx, event, variant)
	}
}

func (i *Interactor) snapshot(ended *dto.EndOutput) dto.Snapshot {
	snap := dto.Snapshot{Ended: ended}
	session := i.current
	if session == nil {
		if i.last != nil {
			snap.Session = toOutput(*i.last)
		}
		return snap
	}
	snap.Open = true
	snap.Running = session.Status == domain.StatusActive
	snap.Session = toOutput(*session)
	snap.TimeRemaining = session.TimeRemaining()
	snap.ProgressPercent = session.ProgressPercent()
	snap.DistanceRemaining = session.DistanceRemaining()
	snap.FuelLow = session.FuelLow()
	snap.FuelCritical = session.FuelCritical()
	return snap
}

// publish fans snap out without blocking. A slow subscriber misses
// intermediate snapshots, but the one carrying Ended replaces the oldest
// buffered snapshot rather than being dropped.
func (i *Interactor) publish(ended *dto.EndOutput) dto.Snapshot {
	snap := i.snapshot(ended)
	i.subMu.Lock()
	defer i.subMu.Unlock()
	for _, ch := range i.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		if ended == nil {
			continue
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
			i.deps.Logger.Warn("final drive snapshot dropped", "session", snap.Session.ID)
		}
	}
	return snap
}

func toOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:               s.ID,
		StartedAt:        s.StartedAt,
		EndedAt:          s.EndedAt,
		VehicleID:        s.VehicleID,
		VehicleName:      s.VehicleName,
		RouteID:          s.RouteID,
		DestinationName:  s.DestinationName,
		TargetDistance:   s.TargetDistance,
		DurationMinutes:  s.DurationMinutes,
		Status:           string(s.Status),
		FuelEfficiency:   s.FuelEfficiency,
		FocusQuality:     s.FocusQuality,
		BreaksTaken:      s.BreaksTaken,
		ElapsedSeconds:   s.Telemetry.ElapsedSeconds,
		DistanceProgress: s.Telemetry.DistanceProgress,
		Fuel:             s.Telemetry.Fuel,
		Speed:            s.Telemetry.Speed,
	}
}
