package usecase

import (
	"context"
	"errors"

	"jira_dashboard/internal/feature/dashboard/domain/entity"
)

// View はHTTP層向けにスナップショットを読み出します。
type View struct {
	store SnapshotStore
}

// NewView はViewの新しいインスタンスを生成します。
func NewView(store SnapshotStore) *View {
	return &View{store: store}
}

// Region returns the current snapshot of one region.
func (v *View) Region(ctx context.Context, region entity.Region) (entity.Snapshot, error) {
	return v.store.Get(ctx, region)
}

// Page returns every populated region keyed by name. Regions not rendered yet are omitted.
func (v *View) Page(ctx context.Context) (map[entity.Region]entity.Snapshot, error) {
	out := make(map[entity.Region]entity.Snapshot, len(entity.AllRegions()))
	for _, r := range entity.AllRegions() {
		snap, err := v.store.Get(ctx, r)
		if errors.Is(err, ErrSnapshotNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[r] = snap
	}
	return out, nil
}

// Status reports per-region freshness for the health endpoint.
func (v *View) Status(ctx context.Context) []entity.RegionStatus {
	out := make([]entity.RegionStatus, 0, len(entity.AllRegions()))
	for _, r := range entity.AllRegions() {
		st := entity.RegionStatus{Region: r}
		if snap, err := v.store.Get(ctx, r); err == nil {
			updated := snap.UpdatedAt
			st.Populated = true
			st.UpdatedAt = &updated
			st.Stale = snap.Stale
		}
		out = append(out, st)
	}
	return out
}
