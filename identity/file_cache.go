package identity

import (
	"context"
	"os"
	"path/filepath"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/cache"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

const (
	cacheFileMode = 0600
	cacheDirMode  = 0700
)

// FileCache persists the MSAL token cache in a file that only the current user
// can read. The file contents are opaque.
type FileCache struct {
	path string
}

// NewFileCache returns a token cache persisted at the given path.
func NewFileCache(path string) (*FileCache, error) {
	if path == "" {
		return nil, errors.New("must specify a token cache file path")
	}
	return &FileCache{path: path}, nil
}

// Path returns the path of the cache file.
func (c *FileCache) Path() string {
	return c.path
}

// Replace loads the token cache from the file. A missing file leaves the cache
// empty.
func (c *FileCache) Replace(ctx context.Context, u cache.Unmarshaler, hints cache.ReplaceHints) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !utility.FileExists(c.path) {
		return nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return errors.Wrapf(err, "reading token cache file '%s'", c.path)
	}
	if len(data) == 0 {
		return nil
	}

	return errors.Wrap(u.Unmarshal(data), "loading token cache")
}

// Export writes the token cache to the file. The file is replaced atomically
// so a failed write never leaves a partial cache behind.
func (c *FileCache) Export(ctx context.Context, m cache.Marshaler, hints cache.ExportHints) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "serializing token cache")
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, cacheDirMode); err != nil {
		return errors.Wrapf(err, "creating token cache directory '%s'", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp*")
	if err != nil {
		return errors.Wrap(err, "creating temporary token cache file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temporary token cache file")
	}
	if err := tmp.Chmod(cacheFileMode); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting token cache file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temporary token cache file")
	}

	return errors.Wrapf(os.Rename(tmpName, c.path), "replacing token cache file '%s'", c.path)
}
