package in_test

import (
	"context"
	"errors"
	"testing"
	"time"

	drivehandler "focusdrive/internal/modules/drive/adapter/in"
	"focusdrive/internal/modules/drive/dto"
)

type countingDrive struct {
	running bool
	ticks   int
	stopAt  int
}

func (d *countingDrive) Start(context.Context, dto.StartInput) (dto.Snapshot, error) {
	return dto.Snapshot{}, nil
}
func (d *countingDrive) Pause(context.Context) (dto.Snapshot, error)  { return dto.Snapshot{}, nil }
func (d *countingDrive) Resume(context.Context) (dto.Snapshot, error) { return dto.Snapshot{}, nil }
func (d *countingDrive) End(context.Context, dto.EndInput) (dto.EndOutput, error) {
	return dto.EndOutput{}, nil
}
func (d *countingDrive) Tick(context.Context) (dto.Snapshot, error) {
	d.ticks++
	if d.ticks >= d.stopAt {
		d.running = false
		return dto.Snapshot{Ended: &dto.EndOutput{}}, nil
	}
	return dto.Snapshot{Open: true, Running: true}, nil
}
func (d *countingDrive) Snapshot(context.Context) (dto.Snapshot, error) {
	return dto.Snapshot{Open: d.running, Running: d.running}, nil
}
func (d *countingDrive) Subscribe(int) (<-chan dto.Snapshot, func()) { return nil, func() {} }
func (d *countingDrive) ListSessions(context.Context, dto.ListInput) ([]dto.SessionOutput, error) {
	return nil, nil
}
func (d *countingDrive) GetSession(context.Context, string) (dto.SessionOutput, error) {
	return dto.SessionOutput{}, nil
}
func (d *countingDrive) Postcards(context.Context, int) ([]dto.PostcardOutput, error) {
	return nil, nil
}

func TestTickerRunsUntilSessionEnds(t *testing.T) {
	t.Parallel()
	drive := &countingDrive{running: true, stopAt: 3}
	seen := 0
	ticker := drivehandler.NewTicker(drive, time.Millisecond, func(dto.Snapshot) { seen++ })

	last, err := ticker.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if last.Ended == nil || drive.ticks != 3 || seen != 3 {
		t.Fatalf("unexpected run result: ticks=%d seen=%d last=%+v", drive.ticks, seen, last)
	}
}

func TestTickerSkipsIdleSession(t *testing.T) {
	t.Parallel()
	drive := &countingDrive{stopAt: 1}
	if _, err := drivehandler.NewTicker(drive, time.Millisecond, nil).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if drive.ticks != 0 {
		t.Fatalf("expected no ticks for an idle session, got %d", drive.ticks)
	}
}

func TestTickerStopsOnCancel(t *testing.T) {
	t.Parallel()
	drive := &countingDrive{running: true, stopAt: 1 << 30}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := drivehandler.NewTicker(drive, time.Millisecond, nil).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
