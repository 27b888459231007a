package cache

import (
	"context"
	"net/url"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN while invalidating.
const scanBatch = 200

// deleteByPattern deletes all keys matching pattern using SCAN.
func deleteByPattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// keyPart percent-encodes s for use as one segment of a Redis key.
// The encoding is reversible, so distinct inputs never share a key.
func keyPart(s string) string {
	return url.QueryEscape(s)
}
