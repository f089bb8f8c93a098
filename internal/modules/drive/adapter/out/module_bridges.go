package out

import (
	"context"

	driveout "focusdrive/internal/modules/drive/port/out"
	feedbackdto "focusdrive/internal/modules/feedback/dto"
	feedbackin "focusdrive/internal/modules/feedback/port/in"
	focusin "focusdrive/internal/modules/focus/port/in"
	garagedto "focusdrive/internal/modules/garage/dto"
	garagein "focusdrive/internal/modules/garage/port/in"
	routein "focusdrive/internal/modules/route/port/in"
	"focusdrive/internal/platform/geo"
)

type GarageBridge struct {
	garage garagein.Usecase
}

func NewGarageBridge(garage garagein.Usecase) driveout.Garage {
	return GarageBridge{garage: garage}
}

func (b GarageBridge) Vehicle(ctx context.Context, id string) (driveout.Vehicle, error) {
	v, err := b.garage.GetVehicle(ctx, id)
	if err != nil {
		return driveout.Vehicle{}, err
	}
	return driveout.Vehicle{ID: v.ID, Name: v.Name, Type: v.Type, Unlocked: v.Unlocked}, nil
}

func (b GarageBridge) RecordUse(ctx context.Context, id string) error {
	_, err := b.garage.RecordUse(ctx, id)
	return err
}

func (b GarageBridge) RecordDistance(ctx context.Context, id string, miles float64) (driveout.Mileage, error) {
	out, err := b.garage.RecordDistance(ctx, garagedto.RecordDistanceInput{VehicleID: id, Miles: miles})
	if err != nil {
		return driveout.Mileage{}, err
	}
	names := make([]string, 0, len(out.NewlyUnlocked))
	for _, v := range out.NewlyUnlocked {
		names = append(names, v.Name)
	}
	return driveout.Mileage{VehicleMiles: out.Vehicle.TotalMiles, FleetMiles: out.FleetMiles, NewlyUnlocked: names}, nil
}

type RouteBridge struct {
	routes routein.Usecase
}

func NewRouteBridge(routes routein.Usecase) driveout.Routes {
	return RouteBridge{routes: routes}
}

func (b RouteBridge) Route(ctx context.Context, id string) (driveout.Route, error) {
	r, err := b.routes.GetRoute(ctx, id)
	if err != nil {
		return driveout.Route{}, err
	}
	return driveout.Route{
		ID:              r.ID,
		DestinationName: r.DestinationName,
		DistanceMiles:   r.DistanceMiles,
		Destination:     geo.Coordinate{Lat: r.DestinationLat, Lon: r.DestinationLon},
	}, nil
}

func (b RouteBridge) MarkCompleted(ctx context.Context, id string) error {
	_, err := b.routes.MarkCompleted(ctx, id)
	return err
}

type ShieldBridge struct {
	focus focusin.Usecase
}

func NewShieldBridge(focus focusin.Usecase) driveout.Shield {
	return ShieldBridge{focus: focus}
}

func (b ShieldBridge) StartSessionBlocking(ctx context.Context) error {
	_, err := b.focus.StartSessionBlocking(ctx)
	return err
}

func (b ShieldBridge) StopSessionBlocking(ctx context.Context) error {
	_, err := b.focus.StopSessionBlocking(ctx)
	return err
}

type FeedbackBridge struct {
	feedback feedbackin.Usecase
}

func NewFeedbackBridge(feedback feedbackin.Usecase) driveout.Feedback {
	return FeedbackBridge{feedback: feedback}
}

func (b FeedbackBridge) Play(ctx context.Context, event, variant string) {
	b.feedback.Play(ctx, feedbackdto.PlayInput{Event: event, Variant: variant})
}
