package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/repositories"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	sessionKeyPrefix = "session:"
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func sessionKey(chatID string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, chatID)
}

// SaveSession writes the session under its chat key. No TTL is set: expiry
// is decided by the game service when the chat is next touched.
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ChatID == "" {
		return errors.New("session chat ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(toRecord(input.Session))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(input.Session.ChatID), sessionJSON, 0).Err(); err != nil {
		return repositories.NewStorageError("save session", err)
	}

	return nil
}

// GetSession retrieves the session of a chat from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKey(input.ChatID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, repositories.NewStorageError("get session", err)
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(sessionJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return record.toModel(), nil
}

// DeleteSession removes the session of a chat from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.ChatID == "" {
		return errors.New("input and chat ID cannot be empty")
	}

	if err := r.client.Del(ctx, sessionKey(input.ChatID)).Err(); err != nil {
		return repositories.NewStorageError("delete session", err)
	}

	return nil
}
