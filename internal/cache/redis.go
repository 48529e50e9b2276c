package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mini-ozon/internal/config"
	"github.com/mini-ozon/internal/constants"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// store 全局 Redis 连接与 key 前缀，client 为 nil 表示缓存关闭
type store struct {
	client *redis.Client
	prefix string
}

var current = &store{prefix: constants.RedisPrefixDefault}

// InitRedis 初始化 Redis；连不通时保持关闭状态并返回错误，调用方按降级处理
func InitRedis(cfg *config.RedisConfig) error {
	prefix := constants.RedisPrefixDefault
	if cfg != nil && strings.TrimSpace(cfg.Prefix) != "" {
		prefix = strings.TrimSpace(cfg.Prefix)
	}
	if cfg == nil || !cfg.Enabled {
		current = &store{prefix: prefix}
		return nil
	}

	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		current = &store{prefix: prefix}
		return fmt.Errorf("redis ping %s:%d: %w", host, port, err)
	}
	current = &store{client: client, prefix: prefix}
	return nil
}

// Ping 检查 Redis 连通性
func Ping(ctx context.Context) error {
	if !Enabled() {
		return nil
	}
	return current.client.Ping(ctx).Err()
}

// Close 关闭 Redis 客户端
func Close() error {
	if !Enabled() {
		return nil
	}
	client := current.client
	current = &store{prefix: current.prefix}
	return client.Close()
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return current != nil && current.client != nil
}

// Client 获取 Redis 客户端，未启用时返回 nil
func Client() *redis.Client {
	if !Enabled() {
		return nil
	}
	return current.client
}

// GetJSON 读取 JSON 缓存，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	raw, err := current.client.Get(ctx, buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return current.client.Set(ctx, buildKey(key), payload, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, key string) error {
	if !Enabled() {
		return nil
	}
	return current.client.Del(ctx, buildKey(key)).Err()
}

func buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return current.prefix
	}
	return current.prefix + ":" + trimmed
}
