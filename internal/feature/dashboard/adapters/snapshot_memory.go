package adapters

import (
	"context"
	"sync"

	"jira_dashboard/internal/feature/dashboard/domain/entity"
	"jira_dashboard/internal/feature/dashboard/usecase"
)

// SnapshotMemory はプロセス内のマップにスナップショットを保持するSnapshotStore実装です。
type SnapshotMemory struct {
	mu    sync.RWMutex
	snaps map[entity.Region]entity.Snapshot
}

var _ usecase.SnapshotStore = (*SnapshotMemory)(nil)

// NewSnapshotMemory creates an empty in-memory store.
func NewSnapshotMemory() *SnapshotMemory {
	return &SnapshotMemory{snaps: make(map[entity.Region]entity.Snapshot)}
}

func (m *SnapshotMemory) Get(_ context.Context, region entity.Region) (entity.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.snaps[region]
	if !ok {
		return entity.Snapshot{}, usecase.ErrSnapshotNotFound
	}
	return s, nil
}

func (m *SnapshotMemory) Put(_ context.Context, snap entity.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[snap.Region] = snap
	return nil
}
