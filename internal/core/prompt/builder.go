package prompt

import (
	"fmt"
	"os"
	"strings"

	"recipebot-api/internal/pkg/common"

	"go.uber.org/zap"
)

// 模板中代表食材清單的佔位符
const ingredientPlaceholder = "{ingredients}"

// Builder 提示詞生成器
// 模板在啟動時載入並驗證，缺檔或缺佔位符屬於致命設定錯誤
type Builder struct {
	template string
}

// NewBuilder 從模板檔案創建提示詞生成器
func NewBuilder(templatePath string) (*Builder, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template %s: %w", templatePath, err)
	}

	template := strings.TrimSpace(string(data))
	if template == "" {
		return nil, fmt.Errorf("prompt template %s is empty", templatePath)
	}
	if !strings.Contains(template, ingredientPlaceholder) {
		return nil, fmt.Errorf("prompt template %s is missing %s placeholder", templatePath, ingredientPlaceholder)
	}

	common.LogInfo("提示詞模板載入完成",
		zap.String("path", templatePath),
	)

	return &Builder{template: template}, nil
}

// Build 將食材清單帶入模板生成提示詞
func (b *Builder) Build(ingredients []string) (string, error) {
	if len(ingredients) == 0 {
		return "", fmt.Errorf("cannot build prompt from empty ingredients list")
	}

	prompt := strings.ReplaceAll(b.template, ingredientPlaceholder, strings.Join(ingredients, ", "))

	common.LogInfo("提示詞生成完成",
		zap.Int("ingredient_count", len(ingredients)),
	)
	return prompt, nil
}
