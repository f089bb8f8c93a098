package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"focusdrive/internal/modules/achievement/domain"
	achievementout "focusdrive/internal/modules/achievement/port/out"
	"focusdrive/internal/platform/clock"
	apperrors "focusdrive/internal/platform/errors"
)

const (
	FilterAll        = "all"
	FilterUnlocked   = "unlocked"
	FilterInProgress = "in_progress"
	FilterLocked     = "locked"
)

type AchievementService struct {
	clock    clock.Clock
	location *time.Location
	store    achievementout.Store
	history  achievementout.History
	logger   *log.Logger

	seedMu sync.Mutex
	seeded bool

	// unsaved holds unlocks whose SaveAll failed; they overlay the store
	// until a later save writes them.
	mu      sync.Mutex
	recent  domain.Recent
	unsaved map[domain.Kind]domain.Achievement
}

func NewAchievementService(clock clock.Clock, location *time.Location, store achievementout.Store, history achievementout.History, logger *log.Logger) *AchievementService {
	if location == nil {
		location = time.UTC
	}
	return &AchievementService{
		clock:    clock,
		location: location,
		store:    store,
		history:  history,
		logger:   logger,
		unsaved:  map[domain.Kind]domain.Achievement{},
	}
}

// CheckAfter re-evaluates every achievement after a completed session and
// returns the ones this call unlocked. Other statuses are a no-op.
//
// Unlocks stand even when they cannot be saved: the failure is logged and
// the next check retries the write without unlocking them again.
func (s *AchievementService) CheckAfter(ctx context.Context, status string, fuelEfficiency int) ([]domain.Achievement, bool, error) {
	if status != "completed" {
		return nil, false, nil
	}
	list, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}
	stats, err := s.stats(ctx, fuelEfficiency == 5)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay(list)
	now := s.clock.Now()
	var unlocked []domain.Achievement
	for i := range list {
		progress, met, err := domain.Evaluate(list[i].Kind, stats)
		if err != nil {
			return nil, false, err
		}
		if list[i].Record(progress, met, now) {
			unlocked = append(unlocked, list[i])
		}
	}
	if err := s.store.SaveAll(ctx, list); err != nil {
		s.logger.Warn("achievement save failed", "unlocked", len(unlocked), "err", err)
		for _, a := range unlocked {
			s.unsaved[a.Kind] = a
		}
	} else {
		clear(s.unsaved)
	}
	for _, a := range unlocked {
		s.recent.Push(a)
		s.logger.Info("achievement unlocked", "kind", a.Kind, "name", a.Name)
	}
	return unlocked, true, nil
}

func (s *AchievementService) stats(ctx context.Context, sessionPerfect bool) (domain.Stats, error) {
	sessions, err := s.history.CompletedSessions(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("load completed sessions: %w", err)
	}
	routes, err := s.history.Routes(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("load routes: %w", err)
	}
	stats := domain.Stats{SessionPerfect: sessionPerfect}
	days := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		stats.TotalMiles += session.DistanceMiles
		days = append(days, clock.DayNumber(session.StartedAt, s.location))
		if session.FuelEfficiency == 5 {
			stats.PerfectSessions++
		}
	}
	stats.StreakDays = domain.Streak(days)
	destinations := map[string]struct{}{}
	for _, r := range routes {
		if !r.Completed {
			continue
		}
		stats.CompletedRoutes++
		destinations[r.DestinationName] = struct{}{}
	}
	stats.UniqueDestinations = len(destinations)
	return stats, nil
}

func (s *AchievementService) List(ctx context.Context, filter string) ([]domain.Achievement, error) {
	list, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	filter = strings.ToLower(strings.TrimSpace(filter))
	var keep func(domain.Achievement) bool
	switch filter {
	case "", FilterAll:
		return list, nil
	case FilterUnlocked:
		keep = func(a domain.Achievement) bool { return a.Unlocked }
	case FilterInProgress:
		keep = domain.Achievement.InProgress
	case FilterLocked:
		keep = domain.Achievement.Locked
	default:
		category, err := domain.ParseCategory(filter)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		keep = func(a domain.Achievement) bool { return a.Category == category }
	}
	out := []domain.Achievement{}
	for _, a := range list {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *AchievementService) Next(ctx context.Context) (domain.Achievement, error) {
	list, err := s.all(ctx)
	if err != nil {
		return domain.Achievement{}, err
	}
	next, ok := domain.Next(list)
	if !ok {
		return domain.Achievement{}, fmt.Errorf("every achievement is unlocked: %w", apperrors.ErrNotFound)
	}
	return next, nil
}

func (s *AchievementService) Summary(ctx context.Context) (domain.Summary, error) {
	list, err := s.all(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(list), nil
}

func (s *AchievementService) Recent() []domain.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recent.Items()
}

func (s *AchievementService) ClearRecent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent.Clear()
}

func (s *AchievementService) all(ctx context.Context) ([]domain.Achievement, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.overlay(list)
	s.mu.Unlock()
	return list, nil
}

func (s *AchievementService) load(ctx context.Context) ([]domain.Achievement, error) {
	if err := s.seed(ctx); err != nil {
		return nil, err
	}
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.Sort(list)
	return list, nil
}

// seed writes the catalog once per process. A failed attempt is retried on
// the next call.
func (s *AchievementService) seed(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if s.seeded {
		return nil
	}
	if err := s.store.Seed(ctx, domain.Catalog()); err != nil {
		return fmt.Errorf("seed achievements: %w", err)
	}
	s.seeded = true
	return nil
}

// overlay replaces stored entries with unsaved unlocks. Callers hold mu.
func (s *AchievementService) overlay(list []domain.Achievement) {
	for i := range list {
		if a, ok := s.unsaved[list[i].Kind]; ok {
			list[i] = a
		}
	}
}
