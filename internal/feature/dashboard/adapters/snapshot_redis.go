// Package adapters はスナップショットの保存先（メモリ、Redis）を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jira_dashboard/internal/feature/dashboard/domain/entity"
	"jira_dashboard/internal/feature/dashboard/usecase"
)

// SnapshotRedis はRedisにJSONとしてスナップショットを保存するSnapshotStore実装です。
// 複数のレプリカが同じ描画内容を返せるようにするために使います。
type SnapshotRedis struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

var _ usecase.SnapshotStore = (*SnapshotRedis)(nil)

// NewSnapshotRedis creates a store writing keys "<prefix>:<region>" that expire after ttl (0 = never).
func NewSnapshotRedis(client redis.Cmdable, prefix string, ttl time.Duration) *SnapshotRedis {
	return &SnapshotRedis{client: client, prefix: prefix, ttl: ttl}
}

func (r *SnapshotRedis) key(region entity.Region) string {
	return fmt.Sprintf("%s:%s", r.prefix, region)
}

// Get retrieves the snapshot of region. A missing key maps to usecase.ErrSnapshotNotFound.
func (r *SnapshotRedis) Get(ctx context.Context, region entity.Region) (entity.Snapshot, error) {
	data, err := r.client.Get(ctx, r.key(region)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.Snapshot{}, usecase.ErrSnapshotNotFound
		}
		return entity.Snapshot{}, err
	}

	var snap entity.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// Put stores snap under its region key.
func (r *SnapshotRedis) Put(ctx context.Context, snap entity.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return r.client.Set(ctx, r.key(snap.Region), data, r.ttl).Err()
}
