package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/credihub/proposal-flow/internal/domain/entity"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const flowKeyPrefix = "flow:"

// RedisStore keeps flow state in Redis, JSON-encoded under flow:<proposalId>.
// A non-zero TTL gives entries the eviction the in-memory map lacks.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed flow store. ttl of zero keeps entries
// forever.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

// Get returns the stored state, or (nil, nil) when the proposal has no state
// yet.
func (s *RedisStore) Get(ctx context.Context, proposalID int64) (*entity.FlowState, error) {
	payload, err := s.client.Get(ctx, flowKey(proposalID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get flow state %d: %w", proposalID, err)
	}

	var state entity.FlowState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decode flow state %d: %w", proposalID, err)
	}
	return &state, nil
}

// Put stores the state under its proposal id, overwriting any previous state
// and refreshing the TTL.
func (s *RedisStore) Put(ctx context.Context, state *entity.FlowState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode flow state %d: %w", state.ProposalID, err)
	}

	if err := s.client.Set(ctx, flowKey(state.ProposalID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("put flow state %d: %w", state.ProposalID, err)
	}
	return nil
}

// Delete removes the state for the proposal id.
func (s *RedisStore) Delete(ctx context.Context, proposalID int64) error {
	if err := s.client.Del(ctx, flowKey(proposalID)).Err(); err != nil {
		return fmt.Errorf("delete flow state %d: %w", proposalID, err)
	}
	return nil
}

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func flowKey(proposalID int64) string {
	return fmt.Sprintf("%s%d", flowKeyPrefix, proposalID)
}
