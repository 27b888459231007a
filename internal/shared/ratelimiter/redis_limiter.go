package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter は Redis の INCR と EXPIRE で複数インスタンス間のカウントを共有する Limiter です。
type RedisLimiter struct {
	rdb      *redis.Client
	limit    int
	interval time.Duration
	prefix   string
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter は新しいRedisLimiterを生成します。prefix が空の場合は "ratelimit" を使います。
func NewRedisLimiter(rdb *redis.Client, limit int, interval time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, interval: interval, prefix: prefix}
}

// Allow はキーのカウンタを加算し、上限を超えていれば残りTTLを返します。
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := fmt.Sprintf("%s:%s", l.prefix, key)

	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit incr: %w", err)
	}
	// 最初の1回でウィンドウを開始する
	if n == 1 {
		if err := l.rdb.Expire(ctx, k, l.interval).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	if n <= int64(l.limit) {
		return true, 0, nil
	}

	ttl, err := l.rdb.PTTL(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit ttl: %w", err)
	}
	if ttl < 0 {
		// EXPIRE が失われたキーは次の呼び出しでやり直せるようにする
		_ = l.rdb.Expire(ctx, k, l.interval).Err()
		ttl = l.interval
	}
	return false, ttl, nil
}
