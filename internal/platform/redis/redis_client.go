// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewRedisClient は接続を確認したRedisクライアントを返します。接続できない場合はエラーを返します。
func NewRedisClient(ctx context.Context, addr, password string, log zerolog.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("address", addr).Msg("Redis connection failed")
		_ = rdb.Close()
		return nil, err
	}

	log.Info().Str("address", addr).Msg("Redis connection successful")
	return rdb, nil
}
