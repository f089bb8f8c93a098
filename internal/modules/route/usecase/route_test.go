package usecase_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	routeadapter "focusdrive/internal/modules/route/adapter/out"
	"focusdrive/internal/modules/route/dto"
	routein "focusdrive/internal/modules/route/port/in"
	routeout "focusdrive/internal/modules/route/port/out"
	"focusdrive/internal/modules/route/service"
	"focusdrive/internal/modules/route/usecase"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/platform/geo"
	"focusdrive/internal/platform/sqlite"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type seqID struct {
	mu sync.Mutex
	n  int
}

func (s *seqID) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "route-" + strconv.Itoa(s.n)
}

type fakeDirections struct {
	leg     routeout.Leg
	err     error
	release chan struct{}
	entered chan struct{}
}

func (f *fakeDirections) Route(context.Context, geo.Coordinate, geo.Coordinate) (routeout.Leg, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.release != nil {
		<-f.release
	}
	return f.leg, f.err
}

var home = service.Place{Name: "Home", Coordinate: geo.Coordinate{Lat: 37.7749, Lon: -122.4194}}

func newRoutes(t *testing.T, directions routeout.Directions) routein.Usecase {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "focusdrive.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	clk := fixedClock{now: time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)}
	svc := service.NewRouteService(clk, &seqID{}, routeadapter.NewSQLiteRouteStore(db), directions, home)
	return usecase.NewInteractor(svc)
}

func TestPlanConvertsMetersAndSecondsAndStoresRoute(t *testing.T) {
	t.Parallel()
	uc := newRoutes(t, &fakeDirections{leg: routeout.Leg{Meters: 16093.44, Seconds: 1230}})
	ctx := context.Background()

	route, err := uc.Plan(ctx, dto.PlanInput{Destination: "golden gate bridge"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if math.Abs(route.DistanceMiles-10) > 0.01 {
		t.Fatalf("expected ~10 miles, got %f", route.DistanceMiles)
	}
	if route.EstimatedMinutes != 20 {
		t.Fatalf("expected 20 minutes, got %d", route.EstimatedMinutes)
	}
	if route.DestinationName != "Golden Gate Bridge" || route.OriginName != "Home" || route.RouteType != "highway" {
		t.Fatalf("unexpected route: %+v", route)
	}
	stored, err := uc.GetRoute(ctx, route.ID)
	if err != nil {
		t.Fatalf("get route: %v", err)
	}
	if stored.DistanceMiles != route.DistanceMiles || stored.Completed {
		t.Fatalf("stored route mismatch: %+v", stored)
	}
}

func TestPlanDirectionsFailureIsNoRoute(t *testing.T) {
	t.Parallel()
	uc := newRoutes(t, &fakeDirections{err: errors.New("offline")})
	_, err := uc.Plan(context.Background(), dto.PlanInput{Destination: "Aspen"})
	if !errors.Is(err, apperrors.ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
	if uc.Calculating() {
		t.Fatalf("calculating flag must clear after failure")
	}
	routes, err := uc.ListRoutes(context.Background(), dto.ListRoutesInput{})
	if err != nil || len(routes) != 0 {
		t.Fatalf("failed plan must not store a route: %+v %v", routes, err)
	}
}

func TestPlanRejectsUnknownDestination(t *testing.T) {
	t.Parallel()
	uc := newRoutes(t, &fakeDirections{})
	if _, err := uc.Plan(context.Background(), dto.PlanInput{Destination: "Atlantis"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Plan(context.Background(), dto.PlanInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCalculatingIsTrueWhileDirectionsPending(t *testing.T) {
	t.Parallel()
	directions := &fakeDirections{
		leg:     routeout.Leg{Meters: 1000, Seconds: 60},
		release: make(chan struct{}),
		entered: make(chan struct{}),
	}
	uc := newRoutes(t, directions)
	done := make(chan error, 1)
	go func() {
		_, err := uc.Plan(context.Background(), dto.PlanInput{Custom: &dto.Place{Name: "Office", Lat: 37.79, Lon: -122.40}})
		done <- err
	}()
	<-directions.entered
	if !uc.Calculating() {
		t.Fatalf("expected calculating while directions pending")
	}
	close(directions.release)
	if err := <-done; err != nil {
		t.Fatalf("plan: %v", err)
	}
	if uc.Calculating() {
		t.Fatalf("calculating must clear once the plan returns")
	}
}

func TestMarkCompletedAndStats(t *testing.T) {
	t.Parallel()
	uc := newRoutes(t, &fakeDirections{leg: routeout.Leg{Meters: 8046.72, Seconds: 600}})
	ctx := context.Background()
	a, err := uc.Plan(ctx, dto.PlanInput{Destination: "Aspen"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if _, err := uc.Plan(ctx, dto.PlanInput{Destination: "Stowe"}); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if _, err := uc.MarkCompleted(ctx, a.ID); err != nil {
		t.Fatalf("complete a: %v", err)
	}
	again, err := uc.MarkCompleted(ctx, a.ID)
	if err != nil {
		t.Fatalf("complete a again: %v", err)
	}
	if again.TimesCompleted != 2 || again.CompletionDate.IsZero() {
		t.Fatalf("unexpected completion state: %+v", again)
	}
	completed, err := uc.ListRoutes(ctx, dto.ListRoutesInput{CompletedOnly: true})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != a.ID {
		t.Fatalf("expected only route a completed: %+v", completed)
	}
	stats, err := uc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CompletedRoutes != 1 || stats.UniqueDestinations != 1 || math.Abs(stats.TotalDistanceMiles-5) > 0.01 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if _, err := uc.MarkCompleted(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDestinationQueries(t *testing.T) {
	t.Parallel()
	uc := newRoutes(t, &fakeDirections{})
	ctx := context.Background()
	beaches, err := uc.ListDestinations(ctx, "beach")
	if err != nil || len(beaches) != 8 {
		t.Fatalf("expected 8 beaches, got %d %v", len(beaches), err)
	}
	if _, err := uc.ListDestinations(ctx, "volcano"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid category, got %v", err)
	}
	nearby, err := uc.NearbyDestinations(ctx, dto.NearbyInput{RadiusMiles: 10})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(nearby) != 2 || nearby[0].Name != "San Francisco" || nearby[1].Name != "Golden Gate Bridge" {
		t.Fatalf("unexpected nearby from default origin: %+v", nearby)
	}
}

func TestEstimatorDirectionsUsesRoadFactorAndAverageSpeed(t *testing.T) {
	t.Parallel()
	sf := geo.Coordinate{Lat: 37.7749, Lon: -122.4194}
	la := geo.Coordinate{Lat: 34.0522, Lon: -118.2437}
	leg, err := routeadapter.NewEstimatorDirections().Route(context.Background(), sf, la)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	miles := leg.Meters * geo.MetersToMiles
	want := geo.HaversineMiles(sf, la) * 1.25
	if math.Abs(miles-want) > 0.01 {
		t.Fatalf("expected %f miles, got %f", want, miles)
	}
	if math.Abs(leg.Seconds-want/55*3600) > 1 {
		t.Fatalf("unexpected duration %f", leg.Seconds)
	}
}
