package domain_test

import (
	"testing"
	"time"

	"focusdrive/internal/modules/route/domain"
	"focusdrive/internal/platform/geo"
)

func TestCatalogHasFiftyDestinationsAcrossCategories(t *testing.T) {
	t.Parallel()
	all := domain.Destinations()
	if len(all) != 50 {
		t.Fatalf("expected 50 destinations, got %d", len(all))
	}
	counts := map[domain.Category]int{}
	for _, d := range all {
		if !d.Coordinate.Valid() {
			t.Fatalf("invalid coordinate for %s", d.Name)
		}
		counts[d.Category]++
	}
	want := map[domain.Category]int{
		domain.CategoryCity:     15,
		domain.CategoryNature:   10,
		domain.CategoryLandmark: 10,
		domain.CategoryBeach:    8,
		domain.CategoryMountain: 7,
	}
	for cat, n := range want {
		if counts[cat] != n {
			t.Fatalf("expected %d %s destinations, got %d", n, cat, counts[cat])
		}
	}
	if len(domain.ByCategory(domain.CategoryBeach)) != 8 {
		t.Fatalf("by category must filter the catalog")
	}
}

func TestNearbySortsByDistanceWithinRadius(t *testing.T) {
	t.Parallel()
	sf := geo.Coordinate{Lat: 37.7749, Lon: -122.4194}
	got := domain.Nearby(sf, 50)
	if len(got) < 2 {
		t.Fatalf("expected san francisco and golden gate nearby, got %+v", got)
	}
	if got[0].Name != "San Francisco" {
		t.Fatalf("expected nearest to be San Francisco, got %s", got[0].Name)
	}
	for i := 1; i < len(got); i++ {
		if got[i].DistanceMiles < got[i-1].DistanceMiles {
			t.Fatalf("nearby results must be sorted by distance")
		}
		if got[i].DistanceMiles > 50 {
			t.Fatalf("result %s outside radius", got[i].Name)
		}
	}
	if len(domain.Nearby(sf, 0)) <= len(got) {
		t.Fatalf("default radius of 500 miles must include more destinations")
	}
}

func TestSearchAndFind(t *testing.T) {
	t.Parallel()
	if res := domain.Search("national park"); len(res) < 5 {
		t.Fatalf("expected national parks, got %d", len(res))
	}
	if res := domain.Search("  "); len(res) != 0 {
		t.Fatalf("blank query must match nothing")
	}
	d, ok := domain.FindDestination("lake tahoe")
	if !ok || d.Category != domain.CategoryMountain {
		t.Fatalf("expected Lake Tahoe, got %+v %v", d, ok)
	}
}

func TestMarkCompletedAndStats(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	routes := []domain.Route{
		{ID: "r1", DestinationName: "Aspen", DistanceMiles: 10},
		{ID: "r2", DestinationName: "Aspen", DistanceMiles: 5},
		{ID: "r3", DestinationName: "Stowe", DistanceMiles: 7},
	}
	routes[0].MarkCompleted(at)
	routes[0].MarkCompleted(at)
	routes[1].MarkCompleted(at)
	if routes[0].TimesCompleted != 2 || !routes[0].CompletionDate.Equal(at) {
		t.Fatalf("unexpected completion bookkeeping: %+v", routes[0])
	}
	stats := domain.ComputeStats(routes)
	if stats.CompletedRoutes != 2 || stats.TotalDistanceMiles != 15 || stats.UniqueDestinations != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestParseTypeDefaultsToHighway(t *testing.T) {
	t.Parallel()
	if typ, err := domain.ParseType(""); err != nil || typ != domain.TypeHighway {
		t.Fatalf("expected highway default, got %q %v", typ, err)
	}
	if _, err := domain.ParseType("teleport"); err == nil {
		t.Fatalf("expected error for unknown route type")
	}
}
