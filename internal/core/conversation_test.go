package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/missionchat/internal/models"
	"github.com/Rorical/missionchat/internal/remote"
)

func newConversation(t *testing.T, m *fakeMission) (*ConversationCoordinator, *ChatState) {
	t.Helper()
	cs := NewChatState()
	return NewConversationCoordinator(cs, m, fixedIdentity("sid-1"), testLogger(t)), cs
}

func TestAsk_Scenario(t *testing.T) {
	m := &fakeMission{answer: "It is a summary."}
	c, cs := newConversation(t, m)

	require.NoError(t, c.Ask(context.Background(), "What is the summary?"))

	turns := cs.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, models.User, turns[0].Role)
	assert.Equal(t, "What is the summary?", turns[0].Text)
	assert.Equal(t, models.Assistant, turns[1].Role)
	assert.Equal(t, "It is a summary.", turns[1].Text)
	assert.Equal(t, []string{"sid-1"}, m.sessionIDs)
	assert.False(t, cs.Flags().Asking)
}

func TestAsk_GrowsByTwoThenNetOne(t *testing.T) {
	m := &fakeMission{answer: "second answer", gate: make(chan struct{}), entered: make(chan struct{})}
	c, cs := newConversation(t, m)
	cs.BeginAsk("first")
	cs.ResolvePending("first answer")
	cs.FinishAsk()
	base := len(cs.Turns())

	done := make(chan error)
	go func() { done <- c.Ask(context.Background(), "second") }()
	<-m.entered

	inflight := cs.Turns()
	assert.Len(t, inflight, base+2)
	assert.True(t, inflight[len(inflight)-1].IsPending())
	assert.True(t, cs.Flags().Asking)

	close(m.gate)
	require.NoError(t, <-done)

	final := cs.Turns()
	assert.Len(t, final, base+2)
	assert.Equal(t, "second answer", final[len(final)-1].Text)
	for _, turn := range final {
		assert.False(t, turn.IsPending())
	}
}

func TestAsk_BlankIsNoop(t *testing.T) {
	m := &fakeMission{}
	c, cs := newConversation(t, m)

	for _, in := range []string{"", "   ", "\n\t "} {
		assert.NoError(t, c.Ask(context.Background(), in))
	}

	assert.Empty(t, cs.Turns())
	_, asks, _ := m.calls()
	assert.Zero(t, asks)
}

func TestAsk_TrimsQuestion(t *testing.T) {
	m := &fakeMission{answer: "ok"}
	c, cs := newConversation(t, m)

	require.NoError(t, c.Ask(context.Background(), "  spaced out  \n"))
	assert.Equal(t, []string{"spaced out"}, m.questions)
	assert.Equal(t, "spaced out", cs.Turns()[0].Text)
}

func TestAsk_EmptyAnswerFallback(t *testing.T) {
	c, cs := newConversation(t, &fakeMission{answer: ""})

	require.NoError(t, c.Ask(context.Background(), "q"))
	assert.Equal(t, "No response received", cs.Turns()[1].Text)
}

func TestAsk_FailureTurnHasErrorPrefix(t *testing.T) {
	failures := []error{
		errBoom,
		&remote.StatusError{Op: "Request", StatusCode: 502},
		errors.New(""),
	}

	for _, failure := range failures {
		c, cs := newConversation(t, &fakeMission{askErr: failure})

		assert.Error(t, c.Ask(context.Background(), "q"))

		turns := cs.Turns()
		require.Len(t, turns, 2)
		assert.True(t, strings.HasPrefix(turns[1].Text, "Error: "), turns[1].Text)
		assert.False(t, turns[1].IsPending())
		assert.False(t, cs.Flags().Asking)
	}
}

func TestAsk_FailureDescriptions(t *testing.T) {
	c, cs := newConversation(t, &fakeMission{askErr: &remote.StatusError{Op: "Request", StatusCode: 502}})
	_ = c.Ask(context.Background(), "q")
	assert.Equal(t, "Error: Request failed: 502", cs.Turns()[1].Text)

	c, cs = newConversation(t, &fakeMission{askErr: errors.New("")})
	_ = c.Ask(context.Background(), "q")
	assert.Equal(t, "Error: Failed to get response", cs.Turns()[1].Text)
}

func TestAsk_RejectedWhileInFlight(t *testing.T) {
	m := &fakeMission{answer: "a", gate: make(chan struct{}), entered: make(chan struct{})}
	c, cs := newConversation(t, m)

	done := make(chan error)
	go func() { done <- c.Ask(context.Background(), "one") }()
	<-m.entered

	assert.ErrorIs(t, c.Ask(context.Background(), "two"), ErrBusy)
	assert.Len(t, cs.Turns(), 2)

	close(m.gate)
	require.NoError(t, <-done)
	_, asks, _ := m.calls()
	assert.Equal(t, 1, asks)
}

func TestAsk_ResolvesAfterConcurrentReset(t *testing.T) {
	m := &fakeMission{answer: "late", gate: make(chan struct{}), entered: make(chan struct{})}
	c, cs := newConversation(t, m)

	done := make(chan error)
	go func() { done <- c.Ask(context.Background(), "q") }()
	<-m.entered

	cs.ClearSession()
	close(m.gate)
	require.NoError(t, <-done)

	turns := cs.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, "late", turns[0].Text)
}
