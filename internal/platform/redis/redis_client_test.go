package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), mr.Addr(), "", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	assert.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), addr, "", zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
