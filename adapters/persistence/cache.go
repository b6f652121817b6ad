package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devlinkhq/devlink/internal/application/service"
	"github.com/devlinkhq/devlink/internal/domain/profile"
	"github.com/devlinkhq/devlink/pkg/logger"
)

// ProfileListKey is the cache key for the public profile list. The worker
// deletes it when a profile mutation event arrives.
const ProfileListKey = "profiles:list"

const (
	profileListTTL = time.Minute
	githubRepoTTL  = 10 * time.Minute
)

// Cache failures never fail a request; readers fall through to the source.

type RedisProfileListCache struct {
	rdb *redis.Client
	log logger.Logger
}

func NewRedisProfileListCache(rdb *redis.Client, log logger.Logger) *RedisProfileListCache {
	return &RedisProfileListCache{rdb: rdb, log: log}
}

func (c *RedisProfileListCache) Get(ctx context.Context) ([]*profile.Profile, bool) {
	raw, err := c.rdb.Get(ctx, ProfileListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Failed to read profile list cache", zap.Error(err))
		}
		return nil, false
	}

	var profiles []*profile.Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		c.log.Warn("Failed to unmarshal cached profile list", zap.Error(err))
		return nil, false
	}
	return profiles, true
}

func (c *RedisProfileListCache) Set(ctx context.Context, profiles []*profile.Profile) {
	raw, err := json.Marshal(profiles)
	if err != nil {
		c.log.Warn("Failed to marshal profile list for cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, ProfileListKey, raw, profileListTTL).Err(); err != nil {
		c.log.Warn("Failed to write profile list cache", zap.Error(err))
	}
}

type RedisGithubRepoCache struct {
	rdb *redis.Client
	log logger.Logger
}

func NewRedisGithubRepoCache(rdb *redis.Client, log logger.Logger) *RedisGithubRepoCache {
	return &RedisGithubRepoCache{rdb: rdb, log: log}
}

func githubRepoKey(username string) string {
	return fmt.Sprintf("github:repos:%s", username)
}

func (c *RedisGithubRepoCache) Get(ctx context.Context, username string) ([]service.Repo, bool) {
	raw, err := c.rdb.Get(ctx, githubRepoKey(username)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Failed to read github repo cache", zap.String("username", username), zap.Error(err))
		}
		return nil, false
	}
	var repos []service.Repo
	if err := json.Unmarshal(raw, &repos); err != nil {
		c.log.Warn("Failed to unmarshal cached github repos", zap.String("username", username), zap.Error(err))
		return nil, false
	}
	return repos, true
}

func (c *RedisGithubRepoCache) Set(ctx context.Context, username string, repos []service.Repo) {
	raw, err := json.Marshal(repos)
	if err != nil {
		c.log.Warn("Failed to marshal github repos for cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, githubRepoKey(username), raw, githubRepoTTL).Err(); err != nil {
		c.log.Warn("Failed to write github repo cache", zap.String("username", username), zap.Error(err))
	}
}
