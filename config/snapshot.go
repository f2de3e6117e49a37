package config

import (
	"log"
	"os"

	"civicconnect-be/persist"
)

// NewSnapshotter picks the snapshot backend from SNAPSHOT_BACKEND
// (file|redis|mongo). The file backend is the default and writes under
// SNAPSHOT_DIR (default ./data).
func NewSnapshotter() persist.Snapshotter {
	backend := os.Getenv("SNAPSHOT_BACKEND")
	switch backend {
	case "redis":
		ConnectRedis()
		return persist.NewRedisSnapshotter(RedisClient)
	case "mongo":
		return persist.NewMongoSnapshotter(GetCollection("snapshots"))
	case "file", "":
		dir := os.Getenv("SNAPSHOT_DIR")
		if dir == "" {
			dir = "data"
		}
		snap, err := persist.NewFileSnapshotter(dir)
		if err != nil {
			log.Fatalf("Failed to open snapshot directory %q: %v", dir, err)
		}
		return snap
	default:
		log.Fatalf("Unknown SNAPSHOT_BACKEND %q", backend)
		return nil
	}
}
