package out

import (
	"context"

	achievementout "focusdrive/internal/modules/achievement/port/out"
	drivedto "focusdrive/internal/modules/drive/dto"
	drivein "focusdrive/internal/modules/drive/port/in"
	routedto "focusdrive/internal/modules/route/dto"
	routein "focusdrive/internal/modules/route/port/in"
)

// HistoryBridge reads completed drives and routes through their modules.
type HistoryBridge struct {
	drives drivein.Usecase
	routes routein.Usecase
}

func NewHistoryBridge(drives drivein.Usecase, routes routein.Usecase) achievementout.History {
	return &HistoryBridge{drives: drives, routes: routes}
}

func (b *HistoryBridge) CompletedSessions(ctx context.Context) ([]achievementout.CompletedSession, error) {
	sessions, err := b.drives.ListSessions(ctx, drivedto.ListInput{Status: "completed"})
	if err != nil {
		return nil, err
	}
	out := make([]achievementout.CompletedSession, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, achievementout.CompletedSession{
			ID:             s.ID,
			StartedAt:      s.StartedAt,
			DistanceMiles:  s.TargetDistance,
			FuelEfficiency: s.FuelEfficiency,
		})
	}
	return out, nil
}

func (b *HistoryBridge) Routes(ctx context.Context) ([]achievementout.RouteRecord, error) {
	routes, err := b.routes.ListRoutes(ctx, routedto.ListRoutesInput{})
	if err != nil {
		return nil, err
	}
	out := make([]achievementout.RouteRecord, 0, len(routes))
	for _, r := range routes {
		out = append(out, achievementout.RouteRecord{DestinationName: r.DestinationName, Completed: r.Completed})
	}
	return out, nil
}
