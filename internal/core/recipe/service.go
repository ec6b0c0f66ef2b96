package recipe

import (
	"context"
	"errors"
	"fmt"

	"recipebot-api/internal/core/ingredient"
	"recipebot-api/internal/pkg/common"

	"go.uber.org/zap"
)

// CompletionClient 取得模型回應的能力介面，方便測試時注入假實作
type CompletionClient interface {
	FetchCompletion(ctx context.Context, prompt string) (string, error)
}

// PromptBuilder 將食材清單組成完整提示詞
type PromptBuilder interface {
	Build(ingredients []string) (string, error)
}

// Service 食譜生成協調器
// 流程：驗證 → 組提示詞 → 呼叫模型 → 解析回應
type Service struct {
	validator *ingredient.Validator
	prompts   PromptBuilder
	ai        CompletionClient
	extractor *Extractor
}

// NewService 創建食譜生成協調器
func NewService(validator *ingredient.Validator, prompts PromptBuilder, ai CompletionClient) *Service {
	return &Service{
		validator: validator,
		prompts:   prompts,
		ai:        ai,
		extractor: NewExtractor(),
	}
}

// Generate 從食材清單生成食譜
// 一定回傳三種結果之一，任何錯誤都在這裡收斂，不往外拋
func (s *Service) Generate(ctx context.Context, ingredients []string) Outcome {
	common.LogInfo("開始處理食譜生成",
		zap.Int("ingredient_count", len(ingredients)),
	)

	// 驗證失敗時直接短路，不呼叫 AI 服務
	if !s.validator.ValidateList(ingredients) {
		return insufficientDataOutcome()
	}

	prompt, err := s.prompts.Build(ingredients)
	if err != nil {
		common.LogError("提示詞生成失敗", zap.Error(err))
		return failureOutcome(fmt.Sprintf("recipe generation failed: %v", err))
	}

	content, err := s.ai.FetchCompletion(ctx, prompt)
	if err != nil {
		common.LogError("AI 服務呼叫失敗", zap.Error(err))
		return failureOutcome(fmt.Sprintf("recipe generation failed: %v", err))
	}

	rec, err := s.extractor.Extract(content)
	if errors.Is(err, ErrInsufficientData) {
		common.LogWarn("模型回應資訊不足")
		return insufficientDataOutcome()
	}
	if err != nil {
		common.LogError("回應解析失敗", zap.Error(err))
		return failureOutcome(fmt.Sprintf("recipe generation failed: %v", err))
	}

	if err := rec.Validate(); err != nil {
		common.LogError("食譜欄位驗證失敗", zap.Error(err))
		return failureOutcome(fmt.Sprintf("recipe generation failed: %v", err))
	}

	common.LogInfo("食譜生成成功",
		zap.String("title", rec.Title),
	)
	return successOutcome(rec)
}
