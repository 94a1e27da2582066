package core

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const (
	// ErrorPrefix starts every assistant turn produced by a failed question.
	ErrorPrefix = "Error: "

	msgNoResponse   = "No response received"
	msgNoAnswerText = "Failed to get response"
)

// ConversationCoordinator drives the question/answer cycle.
type ConversationCoordinator struct {
	state    *ChatState
	mission  Mission
	identity IdentityProvider
	logger   *zap.Logger
}

func NewConversationCoordinator(state *ChatState, mission Mission, identity IdentityProvider, logger *zap.Logger) *ConversationCoordinator {
	return &ConversationCoordinator{state: state, mission: mission, identity: identity, logger: logger}
}

// Ask appends the question and a pending placeholder, queries the service and
// replaces the placeholder with the answer or an error turn. Blank input is a no-op.
func (c *ConversationCoordinator) Ask(ctx context.Context, text string) error {
	question := strings.TrimSpace(text)
	if question == "" {
		return nil
	}

	if !c.state.BeginAsk(question) {
		return ErrBusy
	}
	defer c.state.FinishAsk()

	answer, err := c.mission.Ask(ctx, question, c.identity.GetOrCreate(ctx))
	if err != nil {
		c.logger.Warn("ask failed", zap.Error(err))
		c.state.ResolvePending(ErrorPrefix + describe(err, msgNoAnswerText))
		return err
	}

	if strings.TrimSpace(answer) == "" {
		answer = msgNoResponse
	}
	c.state.ResolvePending(answer)
	return nil
}
