package out

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"focusdrive/internal/modules/feedback/domain"
	feedbackout "focusdrive/internal/modules/feedback/port/out"
)

// BellPlayer rings the terminal bell for alert cues.
type BellPlayer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBellPlayer(w io.Writer) feedbackout.Player {
	return &BellPlayer{w: w}
}

func (p *BellPlayer) Play(_ context.Context, cue domain.Cue) error {
	if !cue.Event.Alert() && cue.Event != domain.EventEngineStart {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

type LogPlayer struct {
	logger *log.Logger
}

func NewLogPlayer(logger *log.Logger) feedbackout.Player {
	return LogPlayer{logger: logger}
}

func (p LogPlayer) Play(_ context.Context, cue domain.Cue) error {
	p.logger.Info("feedback", "event", cue.Event, "sound", cue.SoundName(), "haptic", cue.Event.Haptic())
	return nil
}

type NopPlayer struct{}

func (NopPlayer) Play(context.Context, domain.Cue) error { return nil }
