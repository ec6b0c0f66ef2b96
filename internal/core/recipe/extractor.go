package recipe

import (
	"fmt"
	"regexp"
	"strings"

	"recipebot-api/internal/pkg/common"

	"go.uber.org/zap"
)

// RefusalPrefix 模型表示「資訊不足」的固定開場白，
// 與本地驗證失敗共用同一組措辭
const RefusalPrefix = "need to provide more ingredients"

// 各欄位的啟發式解析預設值
const (
	DefaultTitle       = "Generated Recipe"
	DefaultIngredient  = "Ingredients not specified"
	DefaultInstruction = "Instructions not provided"
	DefaultCookingTime = "30 minutes"
)

var (
	// 標題依序嘗試：標籤、markdown 標題
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Title|Recipe|Name):\s*(.+)`),
		regexp.MustCompile(`(?i)# (.+)`),
		regexp.MustCompile(`(?i)## (.+)`),
	}

	// 區段擷取到空行或下一個標題為止
	ingredientsPattern  = regexp.MustCompile(`(?is)(?:Ingredients|Materials):\s*(.*?)(?:\n\n|\nInstructions|\nSteps|$)`)
	instructionsPattern = regexp.MustCompile(`(?is)(?:Instructions|Steps|Method):\s*(.*?)(?:\n\n|$)`)

	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Cooking time|Prep time|Total time):\s*(.+)`),
		regexp.MustCompile(`(?i)(\d+\s*(?:minutes?|hours?|mins?))`),
	}

	// markdown 圍欄程式碼區塊，語言標籤可有可無
	fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
)

// recipePayload 結構化解析的目標格式
type recipePayload struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  string   `json:"cooking_time"`
}

// Extractor 從原始模型輸出還原食譜結構
// 先嘗試 JSON 解析，失敗或欄位不全時退回啟發式文字解析
type Extractor struct{}

// NewExtractor 創建回應解析器
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract 解析模型回應
// 模型拒絕時回傳 ErrInsufficientData；其餘情況一定能組出完整食譜，
// 解析過程中任何 panic 都會被轉成 error
func (e *Extractor) Extract(content string) (rec *common.Recipe, err error) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError("回應解析發生未預期錯誤",
				zap.Any("panic", r),
			)
			rec = nil
			err = fmt.Errorf("unexpected error while parsing AI response: %v", r)
		}
	}()

	// 拒絕檢查必須在任何結構化解析之前
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(content)), RefusalPrefix) {
		return nil, ErrInsufficientData
	}

	// 結構化解析成功且四個欄位齊全才直接採用，
	// 否則整段原文重新走啟發式解析（欄位不全的 JSON 會被整個放棄）
	if structured := e.extractStructured(content); structured != nil {
		return structured, nil
	}

	return e.extractHeuristic(content), nil
}

// extractStructured 嘗試從圍欄區塊或第一個平衡的 {...} 區段解析 JSON
func (e *Extractor) extractStructured(content string) *common.Recipe {
	candidate := content
	if m := fencedBlockPattern.FindStringSubmatch(content); m != nil {
		candidate = m[1]
	}

	span := jsonSpan(candidate)
	if span == "" {
		return nil
	}

	var payload recipePayload
	if err := common.ParseJSON(common.QuoteJSONKeys(span), &payload); err != nil {
		common.LogDebug("結構化解析失敗，改用啟發式解析",
			zap.Error(err),
		)
		return nil
	}

	if strings.TrimSpace(payload.Title) == "" ||
		len(payload.Ingredients) == 0 ||
		len(payload.Instructions) == 0 ||
		strings.TrimSpace(payload.CookingTime) == "" {
		common.LogDebug("結構化解析結果欄位不全，改用啟發式解析")
		return nil
	}

	return &common.Recipe{
		Title:        payload.Title,
		Ingredients:  payload.Ingredients,
		Instructions: payload.Instructions,
		CookingTime:  payload.CookingTime,
	}
}

// jsonSpan 回傳第一個括號平衡的 {...} 區段
func jsonSpan(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// extractHeuristic 以標籤與格式慣例解析純文字回應
// 每個欄位都有預設值，因此永遠能回傳完整食譜
func (e *Extractor) extractHeuristic(content string) *common.Recipe {
	return &common.Recipe{
		Title:        extractTitle(content),
		Ingredients:  extractIngredients(content),
		Instructions: extractInstructions(content),
		CookingTime:  extractCookingTime(content),
	}
}

func extractTitle(content string) string {
	for _, p := range titlePatterns {
		if m := p.FindStringSubmatch(content); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return DefaultTitle
}

func extractIngredients(content string) []string {
	m := ingredientsPattern.FindStringSubmatch(content)
	if m == nil {
		return []string{DefaultIngredient}
	}

	var ingredients []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Instructions") || strings.HasPrefix(line, "Steps") {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "•-*"))
		if line != "" {
			ingredients = append(ingredients, line)
		}
	}

	if len(ingredients) == 0 {
		return []string{DefaultIngredient}
	}
	return ingredients
}

func extractInstructions(content string) []string {
	m := instructionsPattern.FindStringSubmatch(content)
	if m == nil {
		return []string{DefaultInstruction}
	}

	var instructions []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// 去掉 "1." 這類編號
		line = strings.TrimSpace(strings.TrimLeft(line, "0123456789."))
		if line != "" {
			instructions = append(instructions, line)
		}
	}

	if len(instructions) == 0 {
		return []string{DefaultInstruction}
	}
	return instructions
}

func extractCookingTime(content string) string {
	for _, p := range timePatterns {
		if m := p.FindStringSubmatch(content); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return DefaultCookingTime
}
