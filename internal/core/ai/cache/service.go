package cache

import (
	"context"
	"fmt"

	"recipebot-api/internal/infrastructure/config"
	"recipebot-api/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service redis 回應快取，多副本部署時共用
type Service struct {
	client *redis.Client
	config *config.Config
}

// NewService 創建 redis 快取服務並測試連線
func NewService(cfg *config.Config) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("redis 快取已連線",
		zap.String("addr", cfg.Cache.RedisAddr),
	)

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取快取的模型回應
func (s *Service) Get(ctx context.Context, prompt string) (string, error) {
	data, err := s.client.Get(ctx, s.key(prompt)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return data, nil
}

// Set 快取模型回應
func (s *Service) Set(ctx context.Context, prompt string, content string) error {
	if err := s.client.Set(ctx, s.key(prompt), content, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 redis 連線
func (s *Service) Close() error {
	return s.client.Close()
}

func (s *Service) key(prompt string) string {
	return "ai:completion:" + hashKey(prompt)
}

// NewStore 依設定選擇快取後端，快取停用時回傳 nil
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}
	if cfg.Cache.RedisAddr != "" {
		return NewService(cfg)
	}
	return NewManager(cfg), nil
}
