package persist

import (
	"context"
	"os"
	"path/filepath"
)

// FileSnapshotter writes each snapshot key to its own JSON file under a
// directory. The default backend for local development.
type FileSnapshotter struct {
	dir string
}

func NewFileSnapshotter(dir string) (*FileSnapshotter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileSnapshotter{dir: dir}, nil
}

func (f *FileSnapshotter) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileSnapshotter) Load(_ context.Context, key string) ([]byte, bool, error) {
	blob, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return blob, true, nil
}

func (f *FileSnapshotter) Save(_ context.Context, key string, blob []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(key))
}
