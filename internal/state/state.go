package state

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateManager records which WBS groups have been classified so a rerun can
// skip the finished ones.
type StateManager interface {
	IsGroupCompleted(ctx context.Context, groupID string) (bool, error)
	MarkGroupCompleted(ctx context.Context, groupID string) error
	ClearGroup(ctx context.Context, groupID string) error
}

type redisStateManager struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisStateManager(redisClient *redis.Client) StateManager {
	return &redisStateManager{
		redisClient: redisClient,
		keyPrefix:   "wbsclass:progress:group:",
	}
}

func (s *redisStateManager) IsGroupCompleted(ctx context.Context, groupID string) (bool, error) {
	key := s.keyPrefix + groupID
	_, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil // No progress saved yet
		}
		return false, fmt.Errorf("failed to get completion state for group %s: %w", groupID, err)
	}
	return true, nil
}

func (s *redisStateManager) MarkGroupCompleted(ctx context.Context, groupID string) error {
	key := s.keyPrefix + groupID
	err := s.redisClient.Set(ctx, key, time.Now().Format(time.RFC3339), 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to mark group %s completed: %w", groupID, err)
	}
	return nil
}

func (s *redisStateManager) ClearGroup(ctx context.Context, groupID string) error {
	key := s.keyPrefix + groupID
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear state for group %s: %w", groupID, err)
	}
	return nil
}
