package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/missionchat/internal/models"
)

func TestBeginAsk_AppendsUserAndPending(t *testing.T) {
	cs := NewChatState()

	require.True(t, cs.BeginAsk("hello"))

	turns := cs.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, models.User, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Text)
	assert.NotEqual(t, models.PendingTurnID, turns[0].ID)
	assert.True(t, turns[1].IsPending())
	assert.Equal(t, models.Assistant, turns[1].Role)
	assert.True(t, cs.Flags().Asking)
}

func TestBeginAsk_RejectsWhileAsking(t *testing.T) {
	cs := NewChatState()
	require.True(t, cs.BeginAsk("one"))

	assert.False(t, cs.BeginAsk("two"))
	assert.Len(t, cs.Turns(), 2)
}

func TestResolvePending_ReplacesPlaceholder(t *testing.T) {
	cs := NewChatState()
	cs.BeginAsk("q")
	cs.ResolvePending("a")

	turns := cs.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "a", turns[1].Text)
	assert.False(t, turns[1].IsPending())
	for _, turn := range turns {
		assert.False(t, turn.IsPending())
	}
}

func TestResolvePending_AppendsWhenPlaceholderMissing(t *testing.T) {
	cs := NewChatState()
	cs.BeginAsk("q")
	cs.ClearSession()

	cs.ResolvePending("late answer")

	turns := cs.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, "late answer", turns[0].Text)
}

func TestStage_ReplacesWholeValue(t *testing.T) {
	cs := NewChatState()
	cs.Stage(pdfDoc("a.pdf"))
	cs.Stage(models.Document{Name: "b.pdf", MediaType: models.PDFMediaType})

	staged := cs.Staged()
	require.NotNil(t, staged)
	assert.Equal(t, "b.pdf", staged.Name)
	assert.Empty(t, staged.Path)
	assert.Zero(t, staged.Size)
}

func TestBeginIngest_Preconditions(t *testing.T) {
	cs := NewChatState()

	_, err := cs.BeginIngest()
	assert.ErrorIs(t, err, ErrNoDocument)

	cs.Stage(pdfDoc("a.pdf"))
	doc, err := cs.BeginIngest()
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", doc.Name)
	assert.True(t, cs.Flags().Ingesting)

	_, err = cs.BeginIngest()
	assert.ErrorIs(t, err, ErrBusy)

	cs.FinishIngest()
	assert.False(t, cs.Flags().Ingesting)
}

func TestClearSession_KeepsFlags(t *testing.T) {
	cs := NewChatState()
	cs.Stage(pdfDoc("a.pdf"))
	_, err := cs.BeginIngest()
	require.NoError(t, err)
	cs.BeginAsk("q")

	cs.ClearSession()

	assert.Empty(t, cs.Turns())
	assert.Nil(t, cs.Staged())
	assert.True(t, cs.Flags().Asking)
	assert.True(t, cs.Flags().Ingesting)
}

func TestOnChange_CalledPerMutation(t *testing.T) {
	cs := NewChatState()
	calls := 0
	cs.OnChange(func() {
		calls++
		_ = cs.Turns() // observers may read state without deadlocking
	})

	cs.BeginAsk("q")
	cs.ResolvePending("a")
	cs.FinishAsk()
	assert.Equal(t, 3, calls)
}
