package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"office-dashboard/shared"
)

var (
	// ErrNoSnapshot is returned when nothing has been stored yet.
	ErrNoSnapshot = errors.New("no snapshot yet")
	// ErrStaleSnapshot is returned when a newer snapshot is already stored.
	ErrStaleSnapshot = errors.New("snapshot is stale")
)

// Store holds the latest applied snapshot.
type Store interface {
	NextSeq(ctx context.Context) (int64, error)
	Save(ctx context.Context, snap shared.Snapshot) error
	Load(ctx context.Context) (shared.Snapshot, error)
}

// saveIfNewer writes seq and payload only when seq is greater than the
// stored seq. Returns 1 when applied, 0 when discarded.
var saveIfNewer = redis.NewScript(`
local current = tonumber(redis.call('HGET', KEYS[1], ARGV[1]) or '0')
local incoming = tonumber(ARGV[3])
if incoming <= current then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[3], ARGV[2], ARGV[4])
return 1
`)

// RedisStore keeps the snapshot in a Redis hash and hands out sequence
// numbers from a Redis counter, so concurrent refreshers share one order.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NextSeq reserves the next snapshot sequence number.
func (s *RedisStore) NextSeq(ctx context.Context) (int64, error) {
	seq, err := s.client.Incr(ctx, shared.RedisKeySnapshotSeq).Result()
	if err != nil {
		return 0, fmt.Errorf("reserve snapshot seq: %w", err)
	}
	return seq, nil
}

// Save stores snap unless a snapshot with an equal or higher Seq is
// already there, in which case ErrStaleSnapshot is returned.
func (s *RedisStore) Save(ctx context.Context, snap shared.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	applied, err := saveIfNewer.Run(ctx, s.client,
		[]string{shared.RedisKeySnapshot},
		shared.RedisFieldSeq, shared.RedisFieldPayload, snap.Seq, payload,
	).Int()
	if err != nil {
		return fmt.Errorf("save snapshot %d: %w", snap.Seq, err)
	}
	if applied == 0 {
		return fmt.Errorf("save snapshot %d: %w", snap.Seq, ErrStaleSnapshot)
	}
	return nil
}

// Load returns the stored snapshot or ErrNoSnapshot.
func (s *RedisStore) Load(ctx context.Context) (shared.Snapshot, error) {
	payload, err := s.client.HGet(ctx, shared.RedisKeySnapshot, shared.RedisFieldPayload).Result()
	if err == redis.Nil {
		return shared.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return shared.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	var snap shared.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return shared.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
