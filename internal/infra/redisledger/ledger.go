// Package redisledger backs the dedup ledger with Redis: a SETNX per
// dedup key for the atomic claim plus a sorted-set index scored by
// first-seen time for range pruning.
package redisledger

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"launchwatch/internal/core/domain"
)

const (
	keyPrefix = "alerted:"
	indexKey  = "alerted:index"
)

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// Ledger implements storage.LedgerRepository on Redis.
type Ledger struct {
	rdb *redis.Client
}

// NewLedger connects to Redis and verifies the connection.
func NewLedger(cfg Config) (*Ledger, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Ledger{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (l *Ledger) Close() error {
	return l.rdb.Close()
}

func entryKey(key string) string {
	return keyPrefix + key
}

// Exists checks whether a dedup key has been claimed.
func (l *Ledger) Exists(ctx context.Context, key string) (bool, error) {
	n, err := l.rdb.Exists(ctx, entryKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return n > 0, nil
}

// InsertIfAbsent claims a dedup key via SETNX. The index entry is set
// only when the claim succeeded, so pruning never sees unclaimed keys.
func (l *Ledger) InsertIfAbsent(ctx context.Context, key string, entry *domain.LedgerEntry) (bool, error) {
	firstSeen := entry.FirstSeen
	if firstSeen.IsZero() {
		firstSeen = time.Now()
	}

	inserted, err := l.rdb.SetNX(ctx, entryKey(key), firstSeen.Unix(), 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx failed: %w", err)
	}
	if !inserted {
		return false, nil
	}

	err = l.rdb.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(firstSeen.Unix()),
		Member: key,
	}).Err()
	if err != nil {
		// The claim itself stands; a missing index entry only delays
		// retention for this key.
		return true, fmt.Errorf("redis zadd failed: %w", err)
	}
	return true, nil
}

// Prune removes entries first seen before the cutoff.
func (l *Ledger) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	maxScore := fmt.Sprintf("(%d", olderThan.Unix())

	keys, err := l.rdb.ZRangeByScore(ctx, indexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: maxScore,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("redis zrangebyscore failed: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	pipe := l.rdb.TxPipeline()
	for _, k := range keys {
		pipe.Del(ctx, entryKey(k))
	}
	pipe.ZRemRangeByScore(ctx, indexKey, "-inf", maxScore)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis prune pipeline failed: %w", err)
	}

	return int64(len(keys)), nil
}

// Count returns the number of live entries.
func (l *Ledger) Count(ctx context.Context) (int64, error) {
	n, err := l.rdb.ZCard(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis zcard failed: %w", err)
	}
	return n, nil
}
