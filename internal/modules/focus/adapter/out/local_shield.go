package out

import (
	"context"

	"github.com/charmbracelet/log"

	"focusdrive/internal/modules/focus/domain"
	focusout "focusdrive/internal/modules/focus/port/out"
)

// LocalShield records policy without OS enforcement. Authorization is the
// user's explicit opt-in stored alongside the shield state.
type LocalShield struct {
	store  focusout.StateStore
	logger *log.Logger
}

func NewLocalShield(store focusout.StateStore, logger *log.Logger) focusout.Shield {
	return &LocalShield{store: store, logger: logger}
}

func (s *LocalShield) AuthorizationStatus(ctx context.Context) (domain.Authorization, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	if state.Authorized {
		return domain.AuthorizationApproved, nil
	}
	return domain.AuthorizationNotDetermined, nil
}

func (s *LocalShield) RequestAuthorization(ctx context.Context) (domain.Authorization, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	state.Authorized = true
	if err := s.store.Save(ctx, state); err != nil {
		return "", err
	}
	return domain.AuthorizationApproved, nil
}

func (s *LocalShield) Apply(_ context.Context, categories []domain.Category) error {
	s.logger.Debug("local shield applied", "categories", categories)
	return nil
}

func (s *LocalShield) Clear(context.Context) error {
	s.logger.Debug("local shield cleared")
	return nil
}
