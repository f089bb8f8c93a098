package domain_test

import (
	"testing"

	"focusdrive/internal/modules/garage/domain"
)

func TestCatalogIsValidAndOnlySedanUnlocked(t *testing.T) {
	t.Parallel()
	catalog := domain.Catalog()
	if len(catalog) != 6 {
		t.Fatalf("expected 6 vehicles, got %d", len(catalog))
	}
	for _, v := range catalog {
		if err := v.Validate(); err != nil {
			t.Fatalf("catalog vehicle %s invalid: %v", v.ID, err)
		}
		if v.Unlocked != (v.Type == domain.TypeSedan) {
			t.Fatalf("unexpected unlock state for %s", v.ID)
		}
	}
}

func TestUnlockableUsesFleetMileageThresholds(t *testing.T) {
	t.Parallel()
	catalog := domain.Catalog()
	got := domain.Unlockable(catalog, 120)
	if len(got) != 2 {
		t.Fatalf("expected suv and sports car at 120 miles, got %+v", got)
	}
	if got[0].Type != domain.TypeSUV || got[1].Type != domain.TypeSportsCar {
		t.Fatalf("unexpected unlock order: %s, %s", got[0].Type, got[1].Type)
	}
	if len(domain.Unlockable(catalog, 49.9)) != 0 {
		t.Fatalf("nothing unlocks below 50 miles")
	}
	if len(domain.Unlockable(catalog, 300)) != 5 {
		t.Fatalf("every locked vehicle unlocks at 300 miles")
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()
	if typ, err := domain.ParseType(" Electric_Car "); err != nil || typ != domain.TypeElectricCar {
		t.Fatalf("expected electric_car, got %q %v", typ, err)
	}
	if _, err := domain.ParseType("hovercraft"); err == nil {
		t.Fatalf("expected unknown type error")
	}
}
