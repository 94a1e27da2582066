package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rorical/missionchat/internal/models"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 4 * time.Second

// Timer is the subset of *time.Timer the queue needs.
type Timer interface {
	Stop() bool
}

// Clock schedules expiry callbacks. The real clock wraps time.AfterFunc.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type Option func(*Queue)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(q *Queue) { q.clock = c }
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(q *Queue) { q.ttl = ttl }
}

// WithOnChange registers a callback invoked after every push, dismissal or expiry.
func WithOnChange(f func()) Option {
	return func(q *Queue) { q.onChange = f }
}

type entry struct {
	n     models.Notification
	timer Timer
}

// Queue holds live notifications in insertion order. Each one owns an expiry
// timer keyed by its id, so expiring one never touches another.
type Queue struct {
	mu       sync.Mutex
	entries  []entry
	clock    Clock
	ttl      time.Duration
	onChange func()
	closed   bool
}

func New(opts ...Option) *Queue {
	q := &Queue{
		clock: realClock{},
		ttl:   DefaultTTL,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push appends a notification and schedules its removal.
func (q *Queue) Push(kind models.NotificationKind, text string) models.Notification {
	q.mu.Lock()
	n := models.Notification{
		ID:        q.freshID(),
		Kind:      kind,
		Text:      text,
		CreatedAt: q.clock.Now(),
	}
	e := entry{n: n}
	if !q.closed {
		id := n.ID
		e.timer = q.clock.AfterFunc(q.ttl, func() { q.Dismiss(id) })
	}
	q.entries = append(q.entries, e)
	q.mu.Unlock()

	q.changed()
	return n
}

// Dismiss removes the notification with the given id. It reports whether one was removed.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	idx := q.indexOf(id)
	if idx < 0 {
		q.mu.Unlock()
		return false
	}
	if t := q.entries[idx].timer; t != nil {
		t.Stop()
	}
	q.entries = append(q.entries[:idx], q.entries[idx+1:]...)
	q.mu.Unlock()

	q.changed()
	return true
}

// List returns the live notifications in insertion order.
func (q *Queue) List() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	result := make([]models.Notification, len(q.entries))
	for i, e := range q.entries {
		result[i] = e.n
	}
	return result
}

// Close stops all pending expiry timers. Notifications pushed afterwards never expire.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for _, e := range q.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
}

func (q *Queue) indexOf(id string) int {
	for i, e := range q.entries {
		if e.n.ID == id {
			return i
		}
	}
	return -1
}

// freshID must be called with q.mu held.
func (q *Queue) freshID() string {
	for {
		id := uuid.NewString()
		if q.indexOf(id) < 0 {
			return id
		}
	}
}

func (q *Queue) changed() {
	if q.onChange != nil {
		q.onChange()
	}
}
