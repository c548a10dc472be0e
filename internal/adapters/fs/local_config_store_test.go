package fs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
)

func newTestStore(t *testing.T) *LocalConfigStoreAdapter {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	return NewLocalConfigStoreAdapter(&config.RuntimeConfig{DataDir: dir}, slog.New(slog.DiscardHandler))
}

func TestLocalConfigStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file loads defaults", func(t *testing.T) {
		store := newTestStore(t)
		assert.False(t, store.Exists())

		cfg, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultLocalConfig(), cfg)
	})

	t.Run("save creates the directory and round trips", func(t *testing.T) {
		store := newTestStore(t)
		want := &config.LocalConfig{
			ChainID:     137,
			RPCURL:      "https://polygon-rpc.com",
			LastSearch:  "/search?blocks=10%3Alatest",
			LastExplore: "/explore?chain_id=137",
		}

		require.NoError(t, store.Save(ctx, want))
		assert.True(t, store.Exists())

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		entries, err := os.ReadDir(filepath.Dir(store.GetPath()))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp files are cleaned up")
	})

	t.Run("empty values are omitted", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Save(ctx, &config.LocalConfig{ChainID: 10}))

		data, err := os.ReadFile(store.GetPath())
		require.NoError(t, err)
		assert.JSONEq(t, `{"chain_id":10}`, string(data))
	})

	t.Run("corrupt file", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(store.GetPath()), 0755))
		require.NoError(t, os.WriteFile(store.GetPath(), []byte("{chain"), 0644))

		_, err := store.Load(ctx)
		assert.ErrorContains(t, err, "failed to parse config file")
	})
}
