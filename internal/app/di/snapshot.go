package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"jira_dashboard/internal/feature/dashboard/adapters"
	"jira_dashboard/internal/feature/dashboard/usecase"
)

// SnapshotKeyPrefix namespaces region keys in Redis.
const SnapshotKeyPrefix = "dashboard"

// NewSnapshotStore creates a SnapshotStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to process memory.
func NewSnapshotStore(rdb *redis.Client, ttl time.Duration) usecase.SnapshotStore {
	if rdb != nil {
		return adapters.NewSnapshotRedis(rdb, SnapshotKeyPrefix, ttl)
	}
	return adapters.NewSnapshotMemory()
}
