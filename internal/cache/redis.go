package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/threadcap/threadcap/internal/config"
	"github.com/threadcap/threadcap/internal/logger"
)

var client *redis.Client

// InitRedis 初始化 Redis 连接，未启用时跳过
func InitRedis(cfg config.RedisConfig) error {
	if !cfg.Enabled {
		logger.Infow("redis_disabled")
		return nil
	}

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client = nil
		return err
	}

	logger.Infow("redis_connected", "addr", cfg.Addr, "db", cfg.DB)
	return nil
}

// Enabled Redis 是否可用
func Enabled() bool {
	return client != nil
}

// Client 返回原始客户端（限流等场景直接使用）
func Client() *redis.Client {
	return client
}

// GetJSON 读取并反序列化缓存，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if client == nil {
		return false, nil
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 序列化并写入缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, raw, ttl).Err()
}

// Delete 删除缓存键
func Delete(ctx context.Context, keys ...string) error {
	if client == nil || len(keys) == 0 {
		return nil
	}
	return client.Del(ctx, keys...).Err()
}

// Close 关闭连接
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
