package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"recipebot-api/internal/infrastructure/config"
	"recipebot-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://openrouter.ai/api/v1"

// 單次請求，不重試。呼叫端需要韌性時自行加上重試策略
var (
	// ErrConnection 連線失敗或非 2xx 回應
	ErrConnection = errors.New("openrouter: connection failed")
	// ErrTimeout 請求超過設定的期限
	ErrTimeout = errors.New("openrouter: request timeout")
	// ErrInvalidResponse 回應缺少預期的結構
	ErrInvalidResponse = errors.New("openrouter: invalid response")
)

// Client OpenRouter API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// chatResponse 聊天補全回應
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "http://localhost:8080").
		SetHeader("X-Title", "RecipeBot API")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 發送提示詞並取得模型回應文字
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := map[string]interface{}{
		"model": c.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens":  c.config.OpenRouter.MaxTokens,
		"temperature": c.config.OpenRouter.Temperature,
	}

	common.LogInfo("Sending request to OpenRouter",
		zap.String("model", c.config.OpenRouter.Model),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		if isTimeout(err) {
			common.LogError("OpenRouter request timeout", zap.Error(err))
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		common.LogError("Failed to send request to OpenRouter", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("OpenRouter returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", resp.String()),
		)
		return "", fmt.Errorf("%w: status %d", ErrConnection, resp.StatusCode())
	}

	var result chatResponse
	if err := common.ParseJSON(resp.String(), &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty choices", ErrInvalidResponse)
	}

	content := result.Choices[0].Message.Content
	common.LogInfo("Successfully received response from OpenRouter",
		zap.Int("content_length", len(content)),
	)
	return content, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
