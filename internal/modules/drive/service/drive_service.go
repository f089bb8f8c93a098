package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"focusdrive/internal/modules/drive/domain"
	driveout "focusdrive/internal/modules/drive/port/out"
	"focusdrive/internal/platform/clock"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/platform/id"
)

// DriveService owns session records. Writes made while a drive is running
// are best effort: failures are logged and the simulation carries on.
//
// A session whose final save failed is kept in unsaved until a later save
// lands, so its stale open row is never mistaken for a running drive.
type DriveService struct {
	clock       clock.Clock
	idGen       id.Generator
	store       driveout.SessionStore
	rng         *rand.Rand
	tickSeconds float64
	logger      *log.Logger

	mu      sync.Mutex
	unsaved map[string]domain.Session
}

func NewDriveService(clock clock.Clock, idGen id.Generator, store driveout.SessionStore, rng *rand.Rand, tick time.Duration, logger *log.Logger) *DriveService {
	return &DriveService{
		clock:       clock,
		idGen:       idGen,
		store:       store,
		rng:         rng,
		tickSeconds: tick.Seconds(),
		logger:      logger,
		unsaved:     map[string]domain.Session{},
	}
}

func (s *DriveService) Begin(ctx context.Context, vehicle driveout.Vehicle, route driveout.Route) (domain.Session, error) {
	if strings.TrimSpace(vehicle.ID) == "" || strings.TrimSpace(route.ID) == "" {
		return domain.Session{}, fmt.Errorf("%w: vehicle and route are required", apperrors.ErrInvalidInput)
	}
	if _, err := s.Open(ctx); err == nil {
		return domain.Session{}, apperrors.ErrActiveSessionExists
	} else if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return domain.Session{}, err
	}
	session := domain.New(s.idGen.New(), s.clock.Now(), vehicle.ID, vehicle.Name, route.ID, route.DestinationName, route.DistanceMiles)
	s.persist(ctx, session, "start")
	s.logger.Info("drive started", "session", session.ID, "destination", session.DestinationName, "miles", session.TargetDistance)
	return session, nil
}

// Open returns the active or paused session recorded in the store. A row
// belonging to a session this process already finished is retried as closed
// and reported as ErrNoActiveSession.
func (s *DriveService) Open(ctx context.Context) (domain.Session, error) {
	session, err := s.store.FindOpen(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	s.mu.Lock()
	closed, stale := s.unsaved[session.ID]
	s.mu.Unlock()
	if !stale {
		return session, nil
	}
	s.persist(ctx, closed, "end")
	return domain.Session{}, apperrors.ErrNoActiveSession
}

func (s *DriveService) Advance(ctx context.Context, session *domain.Session) domain.TickResult {
	result := session.Advance(s.tickSeconds, s.rng)
	session.UpdatedAt = s.clock.Now()
	if result.Save && !result.Finished {
		s.persist(ctx, *session, "tick")
	}
	return result
}

func (s *DriveService) Pause(ctx context.Context, session *domain.Session) error {
	if session.Status != domain.StatusActive {
		return apperrors.ErrSessionNotRunning
	}
	session.Pause(s.clock.Now())
	s.persist(ctx, *session, "pause")
	s.logger.Info("drive paused", "session", session.ID, "elapsed", session.Telemetry.ElapsedSeconds)
	return nil
}

func (s *DriveService) Resume(ctx context.Context, session *domain.Session) error {
	if session.Status != domain.StatusPaused {
		return fmt.Errorf("%w: session is %s", apperrors.ErrInvalidInput, session.Status)
	}
	session.Resume(s.clock.Now())
	s.persist(ctx, *session, "resume")
	s.logger.Info("drive resumed", "session", session.ID)
	return nil
}

func (s *DriveService) Finish(ctx context.Context, session *domain.Session, completed bool) {
	session.Finish(completed, s.clock.Now())
	s.persist(ctx, *session, "end")
	if completed {
		s.logger.Info("drive completed", "session", session.ID, "minutes", session.DurationMinutes, "rating", session.FuelEfficiency)
		return
	}
	s.logger.Info("drive abandoned", "session", session.ID, "progress", session.ProgressPercent())
}

func (s *DriveService) List(ctx context.Context, status string, limit int) ([]domain.Session, error) {
	filter := driveout.ListFilter{Limit: limit}
	if strings.TrimSpace(status) != "" {
		parsed, err := domain.ParseStatus(status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		filter.Status = parsed
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative", apperrors.ErrInvalidInput)
	}
	return s.store.List(ctx, filter)
}

func (s *DriveService) Get(ctx context.Context, id string) (domain.Session, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Session{}, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

func (s *DriveService) persist(ctx context.Context, session domain.Session, op string) {
	err := s.store.Save(ctx, session)
	if err != nil {
		s.logger.Warn("session save failed", "op", op, "session", session.ID, "err", err)
	}
	if session.Status.Open() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.unsaved[session.ID] = session
		return
	}
	delete(s.unsaved, session.ID)
}
