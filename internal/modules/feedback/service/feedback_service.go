package service

import (
	"context"

	"github.com/charmbracelet/log"

	"focusdrive/internal/modules/feedback/domain"
	feedbackout "focusdrive/internal/modules/feedback/port/out"
)

type FeedbackService struct {
	player feedbackout.Player
	logger *log.Logger
}

func NewFeedbackService(player feedbackout.Player, logger *log.Logger) *FeedbackService {
	return &FeedbackService{player: player, logger: logger}
}

func (s *FeedbackService) Play(ctx context.Context, event, variant string) {
	e, err := domain.ParseEvent(event)
	if err != nil {
		s.logger.Warn("skip feedback", "err", err)
		return
	}
	if s.player == nil {
		return
	}
	if err := s.player.Play(ctx, domain.Cue{Event: e, Variant: variant}); err != nil {
		s.logger.Warn("feedback playback failed", "event", e, "err", err)
	}
}
