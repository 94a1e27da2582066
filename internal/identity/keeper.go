package identity

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Keeper owns the single session identifier of this installation.
//
// The identifier is read from the durable store on first use and created there
// if absent. When the store is unusable the Keeper falls back to an in-memory
// identifier for the rest of the run.
type Keeper struct {
	store  Store
	logger *zap.Logger
	newID  func() string

	mu       sync.Mutex
	id       string
	degraded bool
}

func NewKeeper(store Store, logger *zap.Logger) *Keeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Keeper{
		store:  store,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// GetOrCreate returns the session identifier, creating and persisting it on first use.
func (k *Keeper) GetOrCreate(ctx context.Context) string {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.id != "" {
		return k.id
	}

	if k.store == nil {
		k.fallback(errors.New("no store configured"))
		return k.id
	}

	id, err := k.store.Get(ctx, SessionKey)
	switch {
	case err == nil && id != "":
		k.id = id
		return k.id
	case err != nil && !errors.Is(err, ErrNotFound):
		k.fallback(err)
		return k.id
	}

	id = k.newID()
	if err := k.store.Set(ctx, SessionKey, id); err != nil {
		k.id = id
		k.degraded = true
		k.logger.Warn("session id not persisted, keeping it in memory", zap.Error(err))
		return k.id
	}

	k.logger.Info("created session id", zap.String("session_id", id))
	k.id = id
	return k.id
}

// Degraded reports whether the identifier lives only in memory.
func (k *Keeper) Degraded() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.degraded
}

func (k *Keeper) fallback(err error) {
	k.id = k.newID()
	k.degraded = true
	k.logger.Warn("identity store unavailable, using in-memory session id", zap.Error(err))
}
