package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	crerr "github.com/cockroachdb/errors"
)

// BlobStore persists opaque documents under fixed keys.
type BlobStore interface {
	// Load returns the stored bytes. ok is false when nothing was saved yet.
	Load(ctx context.Context, key Key) (data []byte, ok bool, err error)
	Save(ctx context.Context, key Key, data []byte) error
}

// FileStore keeps one JSON file per key under dir.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, crerr.New("blob directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create blob directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key Key) string {
	return filepath.Join(f.dir, string(key)+".json")
}

func (f *FileStore) Load(ctx context.Context, key Key) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if !key.Valid() {
		return nil, false, crerr.Newf("unknown blob key %q", key)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "read blob %s", key)
	}
	return data, true, nil
}

// Save writes to a temp file and renames it over the target so readers never
// observe a partial document.
func (f *FileStore) Save(ctx context.Context, key Key, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !key.Valid() {
		return crerr.Newf("unknown blob key %q", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return crerr.Wrapf(err, "write blob %s", key)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		_ = os.Remove(tmp)
		return crerr.Wrapf(err, "rename blob %s", key)
	}
	return nil
}
