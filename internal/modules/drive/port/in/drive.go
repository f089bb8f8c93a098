package in

import (
	"context"

	"focusdrive/internal/modules/drive/dto"
)

// Usecase runs the drive simulation. Tick is driven by an owning loop; the
// simulator never schedules itself.
type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.Snapshot, error)
	Pause(ctx context.Context) (dto.Snapshot, error)
	Resume(ctx context.Context) (dto.Snapshot, error)
	End(ctx context.Context, input dto.EndInput) (dto.EndOutput, error)
	Tick(ctx context.Context) (dto.Snapshot, error)
	Snapshot(ctx context.Context) (dto.Snapshot, error)
	// Subscribe delivers a snapshot after every state change. Snapshots are
	// dropped when the buffer is full.
	Subscribe(buffer int) (<-chan dto.Snapshot, func())
	ListSessions(ctx context.Context, input dto.ListInput) ([]dto.SessionOutput, error)
	GetSession(ctx context.Context, id string) (dto.SessionOutput, error)
	Postcards(ctx context.Context, limit int) ([]dto.PostcardOutput, error)
}
