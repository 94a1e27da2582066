package identity

import (
	"context"
	"errors"
)

// SessionKey is the durable storage key holding the session identifier.
const SessionKey = "missionChatSessionId"

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("identity: key not found")

	// ErrInvalidStoreType is returned by NewStore for an unknown driver.
	ErrInvalidStoreType = errors.New("identity: invalid store type")

	// ErrInvalidConfig is returned by NewStore when a driver is missing a required option.
	ErrInvalidConfig = errors.New("identity: invalid store configuration")
)

// Store is a small durable key/value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases any resources held by the store.
	Close() error
}

// StoreType selects a Store driver.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeFile   StoreType = "file"
	StoreTypeSQLite StoreType = "sqlite"
)

// StoreOption is a functional option for configuring a store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	path string
}

// WithPath sets the backing file for the file and sqlite drivers.
func WithPath(path string) StoreOption {
	return func(c *storeConfig) {
		c.path = path
	}
}

// NewStore creates a Store for the given driver type.
// The file and sqlite drivers require WithPath.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	config := &storeConfig{}
	for _, opt := range opts {
		opt(config)
	}

	switch storeType {
	case StoreTypeMemory:
		return NewMemoryStore(), nil

	case StoreTypeFile:
		if config.path == "" {
			return nil, ErrInvalidConfig
		}
		return NewFileStore(config.path), nil

	case StoreTypeSQLite:
		if config.path == "" {
			return nil, ErrInvalidConfig
		}
		s, err := NewSQLiteStore(config.path)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, ErrInvalidStoreType
	}
}
