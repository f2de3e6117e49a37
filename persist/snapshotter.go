// Package persist provides whole-state snapshot storage for the in-memory
// stores. Each store serializes its entire state as one JSON blob under a
// fixed key; the blob is overwritten wholesale on every mutation and loaded
// wholesale on startup.
package persist

import "context"

// Snapshotter is the persistence port for store snapshots.
type Snapshotter interface {
	// Load returns the blob stored under key. The second result is false
	// when no snapshot exists yet, which is not an error.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save overwrites the blob stored under key.
	Save(ctx context.Context, key string, blob []byte) error
}
