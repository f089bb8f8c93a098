package domain_test

import (
	"testing"

	"focusdrive/internal/modules/feedback/domain"
)

func TestParseEvent(t *testing.T) {
	t.Parallel()
	e, err := domain.ParseEvent(" Low_Fuel ")
	if err != nil || e != domain.EventLowFuel {
		t.Fatalf("expected low_fuel, got %q %v", e, err)
	}
	if !e.Haptic() || !e.Alert() {
		t.Fatalf("low fuel must be a haptic alert")
	}
	if _, err := domain.ParseEvent("confetti"); err == nil {
		t.Fatalf("expected unknown event error")
	}
	if domain.EventAmbientPause.Haptic() {
		t.Fatalf("ambient control is audio only")
	}
}

func TestSoundNameUsesVehicleVariant(t *testing.T) {
	t.Parallel()
	if got := (domain.Cue{Event: domain.EventEngineStart, Variant: "sports_car"}).SoundName(); got != "sports_start" {
		t.Fatalf("expected sports_start, got %s", got)
	}
	if got := (domain.Cue{Event: domain.EventEngineStart}).SoundName(); got != "sedan_start" {
		t.Fatalf("expected sedan_start default, got %s", got)
	}
	if got := (domain.Cue{Event: domain.EventTap}).SoundName(); got != "" {
		t.Fatalf("tap has no sound, got %s", got)
	}
}
