package out

import (
	"context"

	"focusdrive/internal/modules/feedback/domain"
	feedbackout "focusdrive/internal/modules/feedback/port/out"
	providerdto "focusdrive/internal/modules/provider/dto"
	providerin "focusdrive/internal/modules/provider/port/in"
)

type ProviderPlayer struct {
	providers providerin.Usecase
}

func NewProviderPlayer(providers providerin.Usecase) feedbackout.Player {
	return ProviderPlayer{providers: providers}
}

func (p ProviderPlayer) Play(ctx context.Context, cue domain.Cue) error {
	return p.providers.Play(ctx, providerdto.PlayInput{
		Event:   string(cue.Event),
		Variant: cue.Variant,
		Sound:   cue.SoundName(),
		Haptic:  cue.Event.Haptic(),
	})
}
