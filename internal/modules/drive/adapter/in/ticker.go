package in

import (
	"context"
	"errors"
	"time"

	"focusdrive/internal/modules/drive/dto"
	drivein "focusdrive/internal/modules/drive/port/in"
	apperrors "focusdrive/internal/platform/errors"
)

// Ticker is the owning loop of a running drive in the CLI.
type Ticker struct {
	usecase  drivein.Usecase
	interval time.Duration
	onTick   func(dto.Snapshot)
}

func NewTicker(usecase drivein.Usecase, interval time.Duration, onTick func(dto.Snapshot)) Ticker {
	if onTick == nil {
		onTick = func(dto.Snapshot) {}
	}
	return Ticker{usecase: usecase, interval: interval, onTick: onTick}
}

// Run ticks every interval until the session ends or pauses, or ctx is done.
// It returns the last snapshot observed.
func (t Ticker) Run(ctx context.Context) (dto.Snapshot, error) {
	last, err := t.usecase.Snapshot(ctx)
	if err != nil {
		return dto.Snapshot{}, err
	}
	if !last.Running {
		return last, nil
	}
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
			snap, err := t.usecase.Tick(ctx)
			if errors.Is(err, apperrors.ErrNoActiveSession) || errors.Is(err, apperrors.ErrSessionNotRunning) {
				return t.usecase.Snapshot(ctx)
			}
			if err != nil {
				return last, err
			}
			last = snap
			t.onTick(snap)
			if !snap.Running {
				return snap, nil
			}
		}
	}
}
