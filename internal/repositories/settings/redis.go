package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/repositories"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	settingsKeyPrefix = "settings:"

	fieldLanguage = "language"
	fieldGameMode = "game_mode"
)

// Config holds configuration for the Redis settings repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Defaults for chats without stored settings
	Defaults Defaults
}

// redisRepository implements the Repository interface using a Redis hash per chat
type redisRepository struct {
	client   *redis.Client
	defaults Defaults
}

// NewRedis creates a new Redis-backed settings repository
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
		client:   cfg.RedisClient,
		defaults: cfg.Defaults.orFallback(),
	}, nil
}

func settingsKey(chatID string) string {
	return fmt.Sprintf("%s%s", settingsKeyPrefix, chatID)
}

// GetSettings reads the chat hash; missing fields take the defaults
func (r *redisRepository) GetSettings(ctx context.Context, input *GetSettingsInput) (*models.ChatSettings, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	values, err := r.client.HGetAll(ctx, settingsKey(input.ChatID)).Result()
	if err != nil {
		return nil, repositories.NewStorageError("get settings", err)
	}

	return r.defaults.apply(input.ChatID, values[fieldLanguage], values[fieldGameMode]), nil
}

// UpdateSettings sets the provided fields and reads the hash back in one round trip
func (r *redisRepository) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*models.ChatSettings, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	fields := make(map[string]interface{})
	if input.Language != nil {
		fields[fieldLanguage] = *input.Language
	}
	if input.GameMode != nil {
		fields[fieldGameMode] = string(*input.GameMode)
	}

	key := settingsKey(input.ChatID)
	pipe := r.client.TxPipeline()
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
	getCmd := pipe.HGetAll(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, repositories.NewStorageError("update settings", err)
	}

	values := getCmd.Val()
	return r.defaults.apply(input.ChatID, values[fieldLanguage], values[fieldGameMode]), nil
}
