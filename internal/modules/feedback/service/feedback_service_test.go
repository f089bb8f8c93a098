package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	feedbackout "focusdrive/internal/modules/feedback/adapter/out"
	"focusdrive/internal/modules/feedback/domain"
	"focusdrive/internal/modules/feedback/service"
	"focusdrive/internal/platform/logging"
)

type recordingPlayer struct {
	cues []domain.Cue
	err  error
}

func (r *recordingPlayer) Play(_ context.Context, cue domain.Cue) error {
	r.cues = append(r.cues, cue)
	return r.err
}

func TestPlayForwardsValidCues(t *testing.T) {
	t.Parallel()
	player := &recordingPlayer{}
	svc := service.NewFeedbackService(player, logging.Discard())
	svc.Play(context.Background(), "engine_start", "suv")
	svc.Play(context.Background(), "fanfare", "")
	if len(player.cues) != 1 || player.cues[0].Event != domain.EventEngineStart || player.cues[0].Variant != "suv" {
		t.Fatalf("unexpected cues: %+v", player.cues)
	}
}

func TestPlayLogsBackendFailures(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger, err := logging.New(buf, "debug")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	svc := service.NewFeedbackService(&recordingPlayer{err: errors.New("device busy")}, logger)
	svc.Play(context.Background(), "arrival", "")
	if !strings.Contains(buf.String(), "device busy") {
		t.Fatalf("expected failure to be logged, got %q", buf.String())
	}
}

func TestBellPlayerRingsOnlyForAlerts(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	player := feedbackout.NewBellPlayer(buf)
	ctx := context.Background()
	for _, e := range []domain.Event{domain.EventTap, domain.EventAmbientStart, domain.EventArrival, domain.EventLowFuel} {
		if err := player.Play(ctx, domain.Cue{Event: e}); err != nil {
			t.Fatalf("play %s: %v", e, err)
		}
	}
	if buf.String() != "\a\a" {
		t.Fatalf("expected two bells, got %q", buf.String())
	}
}
