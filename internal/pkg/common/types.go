package common

import (
	"fmt"
	"strings"
)

// 食譜欄位限制
const MaxTitleLength = 100

// Recipe 生成的食譜
// 四個欄位都必須有內容，解析端負責以預設值補齊
type Recipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  string   `json:"cooking_time"`
}

// Validate 驗證食譜欄位是否完整
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return NewValidationError("recipe title is empty")
	}
	if len(r.Title) > MaxTitleLength {
		return NewValidationError(fmt.Sprintf("recipe title exceeds %d characters", MaxTitleLength))
	}
	if len(r.Ingredients) == 0 {
		return NewValidationError("recipe ingredients are empty")
	}
	if len(r.Instructions) == 0 {
		return NewValidationError("recipe instructions are empty")
	}
	if strings.TrimSpace(r.CookingTime) == "" {
		return NewValidationError("recipe cooking time is empty")
	}
	return nil
}
