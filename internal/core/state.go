package core

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Rorical/missionchat/internal/models"
)

// ChatState holds the transcript, the staged document and the operation flags.
// Every method is one atomic mutation; observers are notified after the lock is released.
type ChatState struct {
	mu       sync.RWMutex
	turns    []models.Turn
	staged   *models.Document
	flags    models.Flags
	now      func() time.Time
	newID    func() string
	onChange func()
}

func NewChatState() *ChatState {
	return &ChatState{
		turns: make([]models.Turn, 0),
		now:   time.Now,
		newID: func() string { return ulid.Make().String() },
	}
}

// OnChange registers the observer called after every mutation.
func (cs *ChatState) OnChange(f func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.onChange = f
}

func (cs *ChatState) Turns() []models.Turn {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	result := make([]models.Turn, len(cs.turns))
	copy(result, cs.turns)
	return result
}

// Staged returns a copy of the staged document, or nil.
func (cs *ChatState) Staged() *models.Document {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.staged == nil {
		return nil
	}
	doc := *cs.staged
	return &doc
}

func (cs *ChatState) Flags() models.Flags {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.flags
}

// Stage replaces the staged document as a whole.
func (cs *ChatState) Stage(doc models.Document) {
	cs.mutate(func() {
		cs.staged = &doc
	})
}

// BeginIngest returns the staged document and raises the ingesting flag.
func (cs *ChatState) BeginIngest() (models.Document, error) {
	var doc models.Document
	var err error
	cs.mutate(func() {
		switch {
		case cs.staged == nil:
			err = ErrNoDocument
		case cs.flags.Ingesting:
			err = ErrBusy
		default:
			doc = *cs.staged
			cs.flags.Ingesting = true
		}
	})
	return doc, err
}

func (cs *ChatState) FinishIngest() {
	cs.mutate(func() {
		cs.flags.Ingesting = false
	})
}

// BeginAsk appends the user turn and the pending placeholder, then raises the asking flag.
// It returns false without touching the transcript while a previous ask is unresolved.
func (cs *ChatState) BeginAsk(question string) bool {
	ok := false
	cs.mutate(func() {
		if cs.flags.Asking {
			return
		}
		now := cs.now()
		cs.turns = append(cs.turns,
			models.Turn{ID: cs.newID(), Role: models.User, Text: question, CreatedAt: now},
			models.Turn{ID: models.PendingTurnID, Role: models.Assistant, CreatedAt: now},
		)
		cs.flags.Asking = true
		ok = true
	})
	return ok
}

// ResolvePending replaces the pending placeholder with a final assistant turn.
// The turn is appended even if the placeholder is gone (e.g. after a reset).
func (cs *ChatState) ResolvePending(text string) {
	cs.mutate(func() {
		kept := cs.turns[:0]
		for _, t := range cs.turns {
			if !t.IsPending() {
				kept = append(kept, t)
			}
		}
		cs.turns = append(kept, models.Turn{
			ID:        cs.newID(),
			Role:      models.Assistant,
			Text:      text,
			CreatedAt: cs.now(),
		})
	})
}

func (cs *ChatState) FinishAsk() {
	cs.mutate(func() {
		cs.flags.Asking = false
	})
}

func (cs *ChatState) BeginReset() bool {
	ok := false
	cs.mutate(func() {
		if !cs.flags.Resetting {
			cs.flags.Resetting = true
			ok = true
		}
	})
	return ok
}

// ClearSession empties the transcript and drops the staged document. Flags are left alone.
func (cs *ChatState) ClearSession() {
	cs.mutate(func() {
		cs.turns = make([]models.Turn, 0)
		cs.staged = nil
	})
}

func (cs *ChatState) FinishReset() {
	cs.mutate(func() {
		cs.flags.Resetting = false
	})
}

func (cs *ChatState) mutate(f func()) {
	cs.mu.Lock()
	f()
	observer := cs.onChange
	cs.mu.Unlock()

	if observer != nil {
		observer()
	}
}
