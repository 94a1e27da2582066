package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct {
	getErr error
	setErr error
}

func (b *brokenStore) Get(ctx context.Context, key string) (string, error) {
	if b.getErr != nil {
		return "", b.getErr
	}
	return "", ErrNotFound
}

func (b *brokenStore) Set(ctx context.Context, key, value string) error { return b.setErr }
func (b *brokenStore) Close() error                                     { return nil }

func TestGetOrCreate_SameValueTwice(t *testing.T) {
	k := NewKeeper(NewMemoryStore(), nil)
	ctx := context.Background()

	first := k.GetOrCreate(ctx)
	second := k.GetOrCreate(ctx)

	assert.Equal(t, first, second)
	_, err := uuid.Parse(first)
	assert.NoError(t, err)
	assert.False(t, k.Degraded())
}

func TestGetOrCreate_PersistsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	for _, driver := range []StoreType{StoreTypeFile, StoreTypeSQLite} {
		t.Run(string(driver), func(t *testing.T) {
			path := filepath.Join(dir, "identity-"+string(driver))

			s1, err := NewStore(driver, WithPath(path))
			require.NoError(t, err)
			id1 := NewKeeper(s1, nil).GetOrCreate(ctx)
			require.NoError(t, s1.Close())

			s2, err := NewStore(driver, WithPath(path))
			require.NoError(t, err)
			defer s2.Close()
			id2 := NewKeeper(s2, nil).GetOrCreate(ctx)

			assert.Equal(t, id1, id2)
		})
	}
}

func TestGetOrCreate_ReadsExistingValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, SessionKey, "existing-id"))

	assert.Equal(t, "existing-id", NewKeeper(s, nil).GetOrCreate(ctx))
}

func TestGetOrCreate_DegradedWhenStoreUnreadable(t *testing.T) {
	k := NewKeeper(&brokenStore{getErr: errors.New("disk gone")}, nil)
	ctx := context.Background()

	id := k.GetOrCreate(ctx)
	assert.NotEmpty(t, id)
	assert.True(t, k.Degraded())
	assert.Equal(t, id, k.GetOrCreate(ctx), "in-memory id is stable for the run")
}

func TestGetOrCreate_DegradedWhenStoreUnwritable(t *testing.T) {
	k := NewKeeper(&brokenStore{setErr: errors.New("read-only")}, nil)

	id := k.GetOrCreate(context.Background())
	assert.NotEmpty(t, id)
	assert.True(t, k.Degraded())
}

func TestGetOrCreate_NilStore(t *testing.T) {
	k := NewKeeper(nil, nil)
	assert.NotEmpty(t, k.GetOrCreate(context.Background()))
	assert.True(t, k.Degraded())
}
