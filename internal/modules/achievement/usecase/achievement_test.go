package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	achievementstore "focusdrive/internal/modules/achievement/adapter/out"
	"focusdrive/internal/modules/achievement/domain"
	"focusdrive/internal/modules/achievement/dto"
	achievementin "focusdrive/internal/modules/achievement/port/in"
	achievementout "focusdrive/internal/modules/achievement/port/out"
	"focusdrive/internal/modules/achievement/service"
	"focusdrive/internal/modules/achievement/usecase"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/platform/logging"
	"focusdrive/internal/platform/sqlite"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeHistory struct {
	mu       sync.Mutex
	sessions []achievementout.CompletedSession
	routes   []achievementout.RouteRecord
}

func (h *fakeHistory) CompletedSessions(context.Context) ([]achievementout.CompletedSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]achievementout.CompletedSession(nil), h.sessions...), nil
}

func (h *fakeHistory) Routes(context.Context) ([]achievementout.RouteRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]achievementout.RouteRecord(nil), h.routes...), nil
}

func (h *fakeHistory) addSession(at time.Time, miles float64, fuel int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions = append(h.sessions, achievementout.CompletedSession{
		ID: "s" + strconv.Itoa(len(h.sessions)), StartedAt: at, DistanceMiles: miles, FuelEfficiency: fuel,
	})
}

func (h *fakeHistory) addRoute(destination string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, achievementout.RouteRecord{DestinationName: destination, Completed: true})
}

var today = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func newAchievements(t *testing.T, history achievementout.History) achievementin.Usecase {
	t.Helper()
	uc, _ := newAchievementsWith(t, history)
	return uc
}

// newAchievementsWith also returns a store wrapper whose writes can be made to fail.
func newAchievementsWith(t *testing.T, history achievementout.History) (achievementin.Usecase, *failingStore) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "focusdrive.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := &failingStore{Store: achievementstore.NewSQLiteAchievementStore(db)}
	svc := service.NewAchievementService(fixedClock{now: today}, time.UTC, store, history, logging.Discard())
	return usecase.NewInteractor(svc), store
}

var errReadOnly = errors.New("attempt to write a readonly database")

// failingStore fails the next seeds and saves calls.
type failingStore struct {
	achievementout.Store

	mu    sync.Mutex
	seeds int
	saves int
}

func (s *failingStore) Seed(ctx context.Context, catalog []domain.Definition) error {
	s.mu.Lock()
	fail := s.seeds > 0
	if fail {
		s.seeds--
	}
	s.mu.Unlock()
	if fail {
		return errReadOnly
	}
	return s.Store.Seed(ctx, catalog)
}

func (s *failingStore) SaveAll(ctx context.Context, list []domain.Achievement) error {
	s.mu.Lock()
	fail := s.saves > 0
	if fail {
		s.saves--
	}
	s.mu.Unlock()
	if fail {
		return errReadOnly
	}
	return s.Store.SaveAll(ctx, list)
}

func kinds(list []dto.AchievementOutput) map[string]bool {
	out := map[string]bool{}
	for _, a := range list {
		out[a.Kind] = true
	}
	return out
}

func TestCheckAfterUnlocksStreakAndFirsts(t *testing.T) {
	t.Parallel()
	history := &fakeHistory{}
	for _, daysAgo := range []int{0, 1, 2, 4} {
		history.addSession(today.AddDate(0, 0, -daysAgo), 1, 3)
	}
	history.addRoute("Golden Gate Bridge")
	uc := newAchievements(t, history)
	ctx := context.Background()

	out, err := uc.CheckAfter(ctx, dto.SessionInput{ID: "s0", Status: "completed", FuelEfficiency: 5})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	got := kinds(out.NewlyUnlocked)
	for _, want := range []string{"first_mile", "three_day_streak", "first_destination", "perfect_drive"} {
		if !got[want] {
			t.Fatalf("expected %s unlocked, got %+v", want, out.NewlyUnlocked)
		}
	}
	if len(out.NewlyUnlocked) != 4 {
		t.Fatalf("expected 4 unlocks, got %d", len(out.NewlyUnlocked))
	}

	list, err := uc.List(ctx, dto.ListInput{Filter: "consistency"})
	if err != nil {
		t.Fatalf("list consistency: %v", err)
	}
	if len(list) != 2 || list[0].Kind != "three_day_streak" || list[1].Progress != 3.0/7.0 {
		t.Fatalf("unexpected consistency list: %+v", list)
	}
	if !list[0].UnlockedAt.Equal(today) {
		t.Fatalf("unlock time should be recorded, got %v", list[0].UnlockedAt)
	}

	again, err := uc.CheckAfter(ctx, dto.SessionInput{ID: "s1", Status: "completed", FuelEfficiency: 2})
	if err != nil {
		t.Fatalf("check again: %v", err)
	}
	if len(again.NewlyUnlocked) != 0 {
		t.Fatalf("unlocks must be reported once, got %+v", again.NewlyUnlocked)
	}
	unlocked, err := uc.List(ctx, dto.ListInput{Filter: "unlocked"})
	if err != nil {
		t.Fatalf("list unlocked: %v", err)
	}
	if !kinds(unlocked)["perfect_drive"] {
		t.Fatalf("perfect drive must stay unlocked after a non-perfect session: %+v", unlocked)
	}
}

func TestCheckAfterIgnoresUnfinishedSessions(t *testing.T) {
	t.Parallel()
	history := &fakeHistory{}
	history.addSession(today, 5, 5)
	uc := newAchievements(t, history)

	out, err := uc.CheckAfter(context.Background(), dto.SessionInput{ID: "s0", Status: "abandoned", FuelEfficiency: 5})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if out.Checked || len(out.NewlyUnlocked) != 0 {
		t.Fatalf("abandoned sessions must not be evaluated: %+v", out)
	}
	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Unlocked != 0 || summary.Total != 9 || len(summary.Categories) != 4 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRecentKeepsFiveNewest(t *testing.T) {
	t.Parallel()
	history := &fakeHistory{}
	history.addSession(today, 50, 5)
	history.addSession(today.AddDate(0, 0, -1), 50, 5)
	history.addSession(today.AddDate(0, 0, -2), 1, 5)
	for i := range 10 {
		history.addRoute("Destination " + strconv.Itoa(i))
	}
	uc := newAchievements(t, history)
	ctx := context.Background()

	out, err := uc.CheckAfter(ctx, dto.SessionInput{ID: "s0", Status: "completed", FuelEfficiency: 5})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	// first mile, century club, three day streak, first destination, explorer, perfect drive
	if len(out.NewlyUnlocked) != 6 {
		t.Fatalf("expected 6 unlocks, got %+v", out.NewlyUnlocked)
	}
	recent := uc.Recent(ctx)
	if len(recent) != 5 || recent[0].Kind == out.NewlyUnlocked[0].Kind {
		t.Fatalf("recent must drop the oldest unlock: %+v", recent)
	}
	uc.ClearRecent(ctx)
	if len(uc.Recent(ctx)) != 0 {
		t.Fatal("recent must be empty after clear")
	}

	next, err := uc.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next.Kind != "week_warrior" {
		t.Fatalf("expected week warrior next, got %+v", next)
	}
	if _, err := uc.List(ctx, dto.ListInput{Filter: "speed"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid filter error, got %v", err)
	}
}

func TestCheckAfterKeepsUnlocksWhenSaveFails(t *testing.T) {
	t.Parallel()
	history := &fakeHistory{}
	history.addSession(today, 1, 3)
	uc, store := newAchievementsWith(t, history)
	store.saves = 1
	ctx := context.Background()

	out, err := uc.CheckAfter(ctx, dto.SessionInput{ID: "s0", Status: "completed", FuelEfficiency: 3})
	if err != nil {
		t.Fatalf("a failed save must not fail the check: %v", err)
	}
	if !out.Checked || !kinds(out.NewlyUnlocked)["first_mile"] {
		t.Fatalf("expected first mile unlocked, got %+v", out)
	}
	unlocked, err := uc.List(ctx, dto.ListInput{Filter: "unlocked"})
	if err != nil || !kinds(unlocked)["first_mile"] {
		t.Fatalf("unsaved unlock must still be listed: %v %+v", err, unlocked)
	}

	again, err := uc.CheckAfter(ctx, dto.SessionInput{ID: "s1", Status: "completed", FuelEfficiency: 3})
	if err != nil {
		t.Fatalf("check again: %v", err)
	}
	if len(again.NewlyUnlocked) != 0 {
		t.Fatalf("unlock reported twice: %+v", again.NewlyUnlocked)
	}
	recent := uc.Recent(ctx)
	if len(recent) != len(out.NewlyUnlocked) || recent[0].Kind != out.NewlyUnlocked[0].Kind {
		t.Fatalf("recent must hold each unlock once: %+v", recent)
	}

	stored, err := store.Store.List(ctx)
	if err != nil {
		t.Fatalf("list stored: %v", err)
	}
	for _, a := range stored {
		if a.Kind == domain.KindFirstMile && !a.Unlocked {
			t.Fatalf("retry must persist the unlock: %+v", a)
		}
	}
}

func TestSeedFailureIsRetried(t *testing.T) {
	t.Parallel()
	uc, store := newAchievementsWith(t, &fakeHistory{})
	store.seeds = 1
	ctx := context.Background()

	if _, err := uc.Summary(ctx); !errors.Is(err, errReadOnly) {
		t.Fatalf("expected seed error, got %v", err)
	}
	summary, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("second attempt must reseed: %v", err)
	}
	if summary.Total != 9 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
