package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/Rorical/missionchat/internal/models"
)

const (
	msgResetDone   = "Session reset successfully"
	msgResetFailed = "Failed to reset session"
)

// SessionController drives the reset operation. Local state is cleared once
// the remote call settles, whatever its outcome; only the notification differs.
// The session identifier is never rotated.
type SessionController struct {
	state    *ChatState
	mission  Mission
	identity IdentityProvider
	notifier Notifier
	logger   *zap.Logger
}

func NewSessionController(state *ChatState, mission Mission, identity IdentityProvider, notifier Notifier, logger *zap.Logger) *SessionController {
	return &SessionController{state: state, mission: mission, identity: identity, notifier: notifier, logger: logger}
}

func (s *SessionController) Reset(ctx context.Context) error {
	if !s.state.BeginReset() {
		return ErrBusy
	}
	defer s.state.FinishReset()

	err := s.mission.Reset(ctx, s.identity.GetOrCreate(ctx))
	s.state.ClearSession()

	if err != nil {
		s.logger.Warn("reset failed", zap.Error(err))
		s.notifier.Push(models.Error, msgResetFailed)
		return err
	}
	s.notifier.Push(models.Success, msgResetDone)
	return nil
}
