package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"recipebot-api/internal/core/ai/cache"
	"recipebot-api/internal/core/ai/openrouter"
	"recipebot-api/internal/infrastructure/config"
	"recipebot-api/internal/pkg/common"
)

// Service 模型補全服務
// 在 OpenRouter 客戶端外層加上回應快取與最小請求間隔
type Service struct {
	config      *config.Config
	openRouter  *openrouter.Client
	cacheStore  cache.Store
	mu          sync.Mutex
	lastRequest time.Time
}

// NewService 創建補全服務，cacheStore 可為 nil（快取停用）
func NewService(cfg *config.Config, cacheStore cache.Store) *Service {
	return &Service{
		config:     cfg,
		openRouter: openrouter.NewClient(cfg),
		cacheStore: cacheStore,
	}
}

// FetchCompletion 取得提示詞對應的模型回應
func (s *Service) FetchCompletion(ctx context.Context, prompt string) (string, error) {
	if err := s.checkRequestRate(); err != nil {
		return "", err
	}

	// 統一 prompt 空白，確保快取 key 一致
	key := strings.Join(strings.Fields(strings.TrimSpace(prompt)), " ")

	if s.cacheStore != nil {
		if val, err := s.cacheStore.Get(ctx, key); err == nil && val != "" {
			return val, nil
		}
	}

	start := time.Now()
	content, err := s.openRouter.Generate(ctx, prompt)
	common.LogAICall(time.Since(start), err, requestIDFromContext(ctx))
	if err != nil {
		return "", err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.Set(ctx, key, content)
	}

	return content, nil
}

// checkRequestRate 檢查請求頻率
func (s *Service) checkRequestRate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.config.RateLimit.Enabled && s.config.RateLimit.Requests > 0 {
		minInterval := s.config.RateLimit.Window / time.Duration(s.config.RateLimit.Requests)
		if now.Sub(s.lastRequest) < minInterval {
			return errors.New("request rate limit exceeded")
		}
	}

	s.lastRequest = now
	return nil
}

type requestIDKey struct{}

// WithRequestID 將請求 ID 放進 context，供 AI 呼叫日誌使用
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
