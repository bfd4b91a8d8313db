package identity

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/cache"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCacheData struct {
	data          []byte
	unmarshalCall int
	err           error
}

func (f *fakeCacheData) Marshal() ([]byte, error) {
	return f.data, f.err
}

func (f *fakeCacheData) Unmarshal(data []byte) error {
	f.unmarshalCall++
	f.data = append([]byte{}, data...)
	return f.err
}

func TestFileCache(t *testing.T) {
	assert.Implements(t, (*cache.ExportReplace)(nil), &FileCache{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("NewFileCacheFailsWithEmptyPath", func(t *testing.T) {
		c, err := NewFileCache("")
		assert.Error(t, err)
		assert.Zero(t, c)
	})
	t.Run("ReplaceIsNoopWithoutFile", func(t *testing.T) {
		c, err := NewFileCache(filepath.Join(t.TempDir(), "cache.json"))
		require.NoError(t, err)

		data := &fakeCacheData{}
		require.NoError(t, c.Replace(ctx, data, cache.ReplaceHints{}))
		assert.Zero(t, data.unmarshalCall)
	})
	t.Run("ExportThenReplaceRoundTrips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "cache.json")
		c, err := NewFileCache(path)
		require.NoError(t, err)
		assert.Equal(t, path, c.Path())

		require.NoError(t, c.Export(ctx, &fakeCacheData{data: []byte(`{"AccessToken":{}}`)}, cache.ExportHints{}))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		loaded := &fakeCacheData{}
		require.NoError(t, c.Replace(ctx, loaded, cache.ReplaceHints{}))
		assert.Equal(t, 1, loaded.unmarshalCall)
		assert.Equal(t, `{"AccessToken":{}}`, string(loaded.data))
	})
	t.Run("ExportOverwritesExistingFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
		c, err := NewFileCache(path)
		require.NoError(t, err)

		require.NoError(t, c.Export(ctx, &fakeCacheData{data: []byte("new")}, cache.ExportHints{}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file should be cleaned up")
	})
	t.Run("ExportFailsWithMarshalError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		c, err := NewFileCache(path)
		require.NoError(t, err)

		assert.Error(t, c.Export(ctx, &fakeCacheData{err: errors.New("fake error")}, cache.ExportHints{}))
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
	t.Run("ReplaceFailsWithUnmarshalError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.json")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))
		c, err := NewFileCache(path)
		require.NoError(t, err)

		assert.Error(t, c.Replace(ctx, &fakeCacheData{err: errors.New("fake error")}, cache.ReplaceHints{}))
	})
	t.Run("FailsWithCancelledContext", func(t *testing.T) {
		c, err := NewFileCache(filepath.Join(t.TempDir(), "cache.json"))
		require.NoError(t, err)

		cctx, ccancel := context.WithCancel(ctx)
		ccancel()
		assert.Error(t, c.Export(cctx, &fakeCacheData{data: []byte("data")}, cache.ExportHints{}))
		assert.Error(t, c.Replace(cctx, &fakeCacheData{}, cache.ReplaceHints{}))
	})
}
