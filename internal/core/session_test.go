package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/missionchat/internal/models"
)

func newSession(t *testing.T, m *fakeMission) (*SessionController, *ChatState, *recordingNotifier) {
	t.Helper()
	cs := NewChatState()
	n := &recordingNotifier{}
	return NewSessionController(cs, m, fixedIdentity("sid-1"), n, testLogger(t)), cs, n
}

func seed(cs *ChatState) {
	cs.Stage(pdfDoc("report.pdf"))
	cs.BeginAsk("q")
	cs.ResolvePending("a")
	cs.FinishAsk()
}

func TestReset_SuccessClearsState(t *testing.T) {
	m := &fakeMission{}
	s, cs, n := newSession(t, m)
	seed(cs)

	require.NoError(t, s.Reset(context.Background()))

	assert.Empty(t, cs.Turns())
	assert.Nil(t, cs.Staged())
	assert.Equal(t, []string{"sid-1"}, m.sessionIDs)
	require.Len(t, n.all(), 1)
	assert.Equal(t, models.Success, n.all()[0].Kind)
	assert.Equal(t, "Session reset successfully", n.all()[0].Text)
}

func TestReset_FailureStillClearsButNotifiesError(t *testing.T) {
	s, cs, n := newSession(t, &fakeMission{resetErr: errBoom})
	seed(cs)

	assert.ErrorIs(t, s.Reset(context.Background()), errBoom)

	assert.Empty(t, cs.Turns())
	assert.Nil(t, cs.Staged())
	require.Len(t, n.all(), 1)
	assert.Equal(t, models.Error, n.all()[0].Kind)
	assert.Equal(t, "Failed to reset session", n.all()[0].Text)
}

func TestReset_LeavesOtherFlagsAlone(t *testing.T) {
	s, cs, _ := newSession(t, &fakeMission{})
	cs.Stage(pdfDoc("report.pdf"))
	_, err := cs.BeginIngest()
	require.NoError(t, err)
	cs.BeginAsk("q")

	require.NoError(t, s.Reset(context.Background()))

	flags := cs.Flags()
	assert.True(t, flags.Asking)
	assert.True(t, flags.Ingesting)
	assert.False(t, flags.Resetting)
}

func TestReset_RejectedWhileResetting(t *testing.T) {
	m := &fakeMission{gate: make(chan struct{}), entered: make(chan struct{})}
	s, cs, _ := newSession(t, m)

	done := make(chan error)
	go func() { done <- s.Reset(context.Background()) }()
	<-m.entered
	assert.True(t, cs.Flags().Resetting)

	assert.ErrorIs(t, s.Reset(context.Background()), ErrBusy)

	close(m.gate)
	require.NoError(t, <-done)
	_, _, resets := m.calls()
	assert.Equal(t, 1, resets)
}
