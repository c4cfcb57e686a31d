package cache

import (
	"context"
	"time"

	"token_analyzer/internal/app/port"
	domainentity "token_analyzer/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// redisAnalysisCache implements port.AnalysisCache on Redis, for deployments
// where several instances should share one analysis cache. Entries are
// stored as JSON under a keyspace prefix.
type redisAnalysisCache struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisAnalysisCache creates a Redis-backed analysis cache.
func NewRedisAnalysisCache(addr, password string, db int, logger *zap.Logger) port.AnalysisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisAnalysisCache{
		client: client,
		prefix: "analysis:",
		logger: logger.Named("RedisAnalysisCache"),
	}
}

func (c *redisAnalysisCache) Get(ctx context.Context, key string) (*domainentity.TokenAnalysis, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Redis GET failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var analysis domainentity.TokenAnalysis
	if err := json.Unmarshal([]byte(data), &analysis); err != nil {
		c.logger.Warn("Failed to unmarshal cached analysis, dropping entry", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, c.prefix+key)
		return nil, false
	}
	return &analysis, true
}

func (c *redisAnalysisCache) Set(ctx context.Context, key string, analysis *domainentity.TokenAnalysis, ttl time.Duration) {
	data, err := json.Marshal(analysis)
	if err != nil {
		c.logger.Warn("Failed to marshal analysis for caching", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		c.logger.Warn("Redis SET failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisAnalysisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		c.logger.Warn("Redis DEL failed", zap.String("key", key), zap.Error(err))
	}
}
