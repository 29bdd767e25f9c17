package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// storeFactories lets every contract test run against both implementations
func storeFactories(t *testing.T) map[string]DocumentStore {
	t.Helper()

	boltStore, err := OpenBolt(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { boltStore.Close() })

	return map[string]DocumentStore{
		"bolt":   boltStore,
		"memory": NewMemoryStore(),
	}
}

func TestDocumentStore_LoadMissingKey(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := store.Load(context.Background(), DatabaseKey)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestDocumentStore_RoundTrip(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			rev, err := store.Save(ctx, DatabaseKey, []byte(`{"patients":[]}`), 0)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), rev)

			data, loadedRev, err := store.Load(ctx, DatabaseKey)
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"patients":[]}`), data)
			assert.Equal(t, uint64(1), loadedRev)

			rev, err = store.Save(ctx, DatabaseKey, []byte(`{"patients":[1]}`), 1)
			require.NoError(t, err)
			assert.Equal(t, uint64(2), rev)
		})
	}
}

func TestDocumentStore_StaleRevisionRejected(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Save(ctx, DatabaseKey, []byte(`a`), 0)
			require.NoError(t, err)
			_, err = store.Save(ctx, DatabaseKey, []byte(`b`), 1)
			require.NoError(t, err)

			// A writer still holding revision 1 must not clobber revision 2.
			_, err = store.Save(ctx, DatabaseKey, []byte(`c`), 1)
			assert.ErrorIs(t, err, ErrRevisionConflict)

			data, rev, err := store.Load(ctx, DatabaseKey)
			require.NoError(t, err)
			assert.Equal(t, []byte(`b`), data)
			assert.Equal(t, uint64(2), rev)
		})
	}
}

func TestDocumentStore_KeysAreIndependent(t *testing.T) {
	for name, store := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Save(ctx, DatabaseKey, []byte(`live`), 0)
			require.NoError(t, err)

			_, _, err = store.Load(ctx, BackupKey)
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = store.Save(ctx, BackupKey, []byte(`backup`), 0)
			require.NoError(t, err)

			data, _, err := store.Load(ctx, DatabaseKey)
			require.NoError(t, err)
			assert.Equal(t, []byte(`live`), data)
		})
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := OpenBolt(path, zap.NewNop())
	require.NoError(t, err)
	_, err = store.Save(ctx, DatabaseKey, []byte(`persisted`), 0)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenBolt(path, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	data, rev, err := reopened.Load(ctx, DatabaseKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`persisted`), data)
	assert.Equal(t, uint64(1), rev)
}
