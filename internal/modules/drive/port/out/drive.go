package out

import (
	"context"

	"focusdrive/internal/modules/drive/domain"
	"focusdrive/internal/platform/geo"
)

type ListFilter struct {
	Status domain.Status
	Limit  int
}

type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	// FindOpen returns the active or paused session, or ErrNoActiveSession.
	FindOpen(ctx context.Context) (domain.Session, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Session, error)
}

// JournalEntry is a postcard note as read back from the journal.
type JournalEntry struct {
	Path     string
	Postcard domain.Postcard
	Body     string
}

type Journal interface {
	WritePostcard(ctx context.Context, postcard domain.Postcard) (string, error)
	// List returns postcards newest first; limit 0 means all.
	List(ctx context.Context, limit int) ([]JournalEntry, error)
}

type Vehicle struct {
	ID       string
	Name     string
	Type     string
	Unlocked bool
}

type Mileage struct {
	VehicleMiles  float64
	FleetMiles    float64
	NewlyUnlocked []string
}

type Garage interface {
	Vehicle(ctx context.Context, id string) (Vehicle, error)
	RecordUse(ctx context.Context, id string) error
	RecordDistance(ctx context.Context, id string, miles float64) (Mileage, error)
}

type Route struct {
	ID              string
	DestinationName string
	DistanceMiles   float64
	Destination     geo.Coordinate
}

type Routes interface {
	Route(ctx context.Context, id string) (Route, error)
	MarkCompleted(ctx context.Context, id string) error
}

type Shield interface {
	StartSessionBlocking(ctx context.Context) error
	StopSessionBlocking(ctx context.Context) error
}

type Feedback interface {
	Play(ctx context.Context, event, variant string)
}
