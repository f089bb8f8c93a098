package usecase

import (
	"context"

	"focusdrive/internal/modules/feedback/dto"
	feedbackin "focusdrive/internal/modules/feedback/port/in"
	"focusdrive/internal/modules/feedback/service"
)

type Interactor struct {
	svc *service.FeedbackService
}

func NewInteractor(svc *service.FeedbackService) feedbackin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Play(ctx context.Context, input dto.PlayInput) {
	i.svc.Play(ctx, input.Event, input.Variant)
}
