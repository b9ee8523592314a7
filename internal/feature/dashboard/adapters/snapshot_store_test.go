package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira_dashboard/internal/feature/dashboard/domain/entity"
	"jira_dashboard/internal/feature/dashboard/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}

func sampleSnapshot(region entity.Region) entity.Snapshot {
	return entity.Snapshot{
		Region:    region,
		Data:      json.RawMessage(`"$12.35"`),
		UpdatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

// storeContract は両実装に共通する振る舞いを検証します。
func storeContract(t *testing.T, store usecase.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, entity.RegionPriceText)
	assert.ErrorIs(t, err, usecase.ErrSnapshotNotFound)

	want := sampleSnapshot(entity.RegionPriceText)
	require.NoError(t, store.Put(ctx, want))

	got, err := store.Get(ctx, entity.RegionPriceText)
	require.NoError(t, err)
	assert.Equal(t, want.Region, got.Region)
	assert.JSONEq(t, string(want.Data), string(got.Data))
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
	assert.False(t, got.Stale)

	stale := want
	stale.Stale = true
	stale.Error = "fetch quotes: boom"
	require.NoError(t, store.Put(ctx, stale))
	got, err = store.Get(ctx, entity.RegionPriceText)
	require.NoError(t, err)
	assert.True(t, got.Stale)
	assert.Equal(t, "fetch quotes: boom", got.Error)

	_, err = store.Get(ctx, entity.RegionPriceChart)
	assert.ErrorIs(t, err, usecase.ErrSnapshotNotFound)
}

func TestSnapshotMemory(t *testing.T) {
	t.Parallel()
	storeContract(t, NewSnapshotMemory())
}

func TestSnapshotMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewSnapshotMemory()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Put(ctx, sampleSnapshot(entity.RegionStatusChart))
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Get(ctx, entity.RegionStatusChart)
		}()
	}
	wg.Wait()

	_, err := store.Get(ctx, entity.RegionStatusChart)
	assert.NoError(t, err)
}

func TestSnapshotRedis(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	storeContract(t, NewSnapshotRedis(client, "dashboard", time.Hour))
}

func TestSnapshotRedis_KeyAndTTL(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	store := NewSnapshotRedis(client, "dashboard", 30*time.Minute)

	require.NoError(t, store.Put(context.Background(), sampleSnapshot(entity.RegionAssigneeTable)))

	assert.True(t, mr.Exists("dashboard:assignee_table"))
	assert.Equal(t, 30*time.Minute, mr.TTL("dashboard:assignee_table"))

	mr.FastForward(31 * time.Minute)
	_, err := store.Get(context.Background(), entity.RegionAssigneeTable)
	assert.ErrorIs(t, err, usecase.ErrSnapshotNotFound)
}

func TestSnapshotRedis_Errors(t *testing.T) {
	t.Parallel()

	t.Run("get propagates redis error", func(t *testing.T) {
		t.Parallel()
		db, mock := redismock.NewClientMock()
		mock.ExpectGet("dashboard:price_chart").SetErr(errors.New("connection refused"))

		_, err := NewSnapshotRedis(db, "dashboard", time.Hour).Get(context.Background(), entity.RegionPriceChart)
		require.Error(t, err)
		assert.NotErrorIs(t, err, usecase.ErrSnapshotNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get rejects corrupt value", func(t *testing.T) {
		t.Parallel()
		db, mock := redismock.NewClientMock()
		mock.ExpectGet("dashboard:price_chart").SetVal("{corrupt")

		_, err := NewSnapshotRedis(db, "dashboard", time.Hour).Get(context.Background(), entity.RegionPriceChart)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmarshal")
	})

	t.Run("put propagates redis error", func(t *testing.T) {
		t.Parallel()
		db, mock := redismock.NewClientMock()
		snap := sampleSnapshot(entity.RegionPriceText)
		data, err := json.Marshal(snap)
		require.NoError(t, err)
		mock.ExpectSet("dashboard:price_text", data, time.Hour).SetErr(errors.New("READONLY"))

		err = NewSnapshotRedis(db, "dashboard", time.Hour).Put(context.Background(), snap)
		assert.EqualError(t, err, "READONLY")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
