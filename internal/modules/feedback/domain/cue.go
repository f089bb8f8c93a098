package domain

import (
	"fmt"
	"strings"
)

type Event string

const (
	EventEngineStart   Event = "engine_start"
	EventArrival       Event = "arrival"
	EventLowFuel       Event = "low_fuel"
	EventSeatbelt      Event = "seatbelt"
	EventTap           Event = "tap"
	EventSelection     Event = "selection"
	EventAmbientStart  Event = "ambient_start"
	EventAmbientPause  Event = "ambient_pause"
	EventAmbientResume Event = "ambient_resume"
	EventStopAll       Event = "stop_all"
)

func ParseEvent(raw string) (Event, error) {
	e := Event(strings.ToLower(strings.TrimSpace(raw)))
	switch e {
	case EventEngineStart, EventArrival, EventLowFuel, EventSeatbelt, EventTap, EventSelection,
		EventAmbientStart, EventAmbientPause, EventAmbientResume, EventStopAll:
		return e, nil
	default:
		return "", fmt.Errorf("unknown feedback event: %s", raw)
	}
}

// Haptic reports whether the event carries a tactile pattern. Ambient
// control events are audio only.
func (e Event) Haptic() bool {
	switch e {
	case EventEngineStart, EventArrival, EventLowFuel, EventSeatbelt, EventTap, EventSelection:
		return true
	default:
		return false
	}
}

// Alert reports whether the event should interrupt the user.
func (e Event) Alert() bool {
	return e == EventArrival || e == EventLowFuel
}

// Cue is one event to render, optionally specialised by a variant such as
// the vehicle type for engine sounds.
type Cue struct {
	Event   Event
	Variant string
}

func (c Cue) SoundName() string {
	switch c.Event {
	case EventEngineStart:
		if c.Variant == "" {
			return "sedan_start"
		}
		return strings.TrimSuffix(c.Variant, "_car") + "_start"
	case EventArrival:
		return "arrival"
	case EventAmbientStart, EventAmbientResume:
		return "driving_ambient"
	default:
		return ""
	}
}
