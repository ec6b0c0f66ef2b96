package ingredient

import (
	"regexp"
	"sort"
	"strings"

	"recipebot-api/internal/pkg/common"

	"go.uber.org/zap"
)

// 食材清單的數量限制
const (
	MinIngredients = 1
	MaxIngredients = 20
)

// UnitClass 單位分類
type UnitClass string

const (
	UnitMass     UnitClass = "mass"
	UnitCapacity UnitClass = "capacity"
	UnitUnknown  UnitClass = "unknown"
)

// 重量單位詞彙表
var massUnits = map[string]struct{}{
	"kg":        {},
	"kilogram":  {},
	"kilograms": {},
	"g":         {},
	"gram":      {},
	"grams":     {},
	"lb":        {},
	"pound":     {},
	"pounds":    {},
	"oz":        {},
	"ounce":     {},
	"ounces":    {},
}

// 容量單位詞彙表
var capacityUnits = map[string]struct{}{
	"l":            {},
	"liter":        {},
	"liters":       {},
	"litre":        {},
	"litres":       {},
	"ml":           {},
	"milliliter":   {},
	"milliliters":  {},
	"millilitre":   {},
	"millilitres":  {},
	"cup":          {},
	"cups":         {},
	"tbsp":         {},
	"tablespoon":   {},
	"tablespoons":  {},
	"tsp":          {},
	"teaspoon":     {},
	"teaspoons":    {},
	"fl oz":        {},
	"fluid ounce":  {},
	"fluid ounces": {},
}

var (
	// 所有單位拼寫，長的在前。"fl oz" 必須先於 "oz" 嘗試，否則會被前綴吃掉
	unitsByLength = sortedUnitsByLength()

	// 食材格式：數量 + 可選空白 + 單位 + 空白 + 名稱，錨定在字串開頭，
	// 匹配後的剩餘內容不檢查
	tokenPattern = buildTokenPattern()
)

func sortedUnitsByLength() []string {
	units := make([]string, 0, len(massUnits)+len(capacityUnits))
	for u := range massUnits {
		units = append(units, u)
	}
	for u := range capacityUnits {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool {
		if len(units[i]) != len(units[j]) {
			return len(units[i]) > len(units[j])
		}
		return units[i] < units[j]
	})
	return units
}

func buildTokenPattern() *regexp.Regexp {
	quoted := make([]string, len(unitsByLength))
	for i, u := range unitsByLength {
		quoted[i] = regexp.QuoteMeta(u)
	}
	return regexp.MustCompile(`(?i)^\d+(?:\.\d+)?\s*(?:` + strings.Join(quoted, "|") + `)\s+\w`)
}

// Validator 檢查食材字串是否帶有數量與已知單位
type Validator struct{}

// NewValidator 創建食材驗證器
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateList 驗證完整的食材清單
// 驗證失敗是正常結果，只記錄日誌、回傳 false，不回傳 error
func (v *Validator) ValidateList(ingredients []string) bool {
	if len(ingredients) == 0 {
		common.LogWarn("食材清單為空")
		return false
	}
	if len(ingredients) < MinIngredients || len(ingredients) > MaxIngredients {
		common.LogWarn("食材數量超出範圍",
			zap.Int("count", len(ingredients)),
		)
		return false
	}

	for _, ing := range ingredients {
		if !v.ValidateToken(ing) {
			return false
		}
	}

	common.LogInfo("食材清單驗證通過",
		zap.Int("count", len(ingredients)),
	)
	return true
}

// ValidateToken 驗證單一食材字串
func (v *Validator) ValidateToken(token string) bool {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		common.LogWarn("發現空白食材")
		return false
	}

	if !tokenPattern.MatchString(trimmed) {
		common.LogWarn("食材格式無效",
			zap.String("ingredient", token),
		)
		return false
	}

	return true
}

// ExtractUnit 從食材字串中取出單位，找不到時回傳空字串
// 左邊界必須是開頭、空白或數字，右邊界必須是結尾或空白
func (v *Validator) ExtractUnit(token string) string {
	s := strings.ToLower(strings.TrimSpace(token))
	for _, unit := range unitsByLength {
		from := 0
		for {
			i := strings.Index(s[from:], unit)
			if i < 0 {
				break
			}
			pos := from + i
			if boundedLeft(s, pos) && boundedRight(s, pos+len(unit)) {
				return unit
			}
			from = pos + 1
		}
	}
	return ""
}

func boundedLeft(s string, pos int) bool {
	if pos == 0 {
		return true
	}
	c := s[pos-1]
	return c == ' ' || (c >= '0' && c <= '9')
}

func boundedRight(s string, end int) bool {
	if end == len(s) {
		return true
	}
	return s[end] == ' '
}

// Classify 判斷單位屬於重量、容量還是未知
func (v *Validator) Classify(unit string) UnitClass {
	u := strings.ToLower(strings.TrimSpace(unit))
	if _, ok := massUnits[u]; ok {
		return UnitMass
	}
	if _, ok := capacityUnits[u]; ok {
		return UnitCapacity
	}
	return UnitUnknown
}

// SupportedUnits 支援的單位，依字母排序方便呈現
type SupportedUnits struct {
	Mass     []string `json:"mass"`
	Capacity []string `json:"capacity"`
}

// SupportedUnits 回傳支援的單位詞彙表
func (v *Validator) SupportedUnits() SupportedUnits {
	mass := make([]string, 0, len(massUnits))
	for u := range massUnits {
		mass = append(mass, u)
	}
	capacity := make([]string, 0, len(capacityUnits))
	for u := range capacityUnits {
		capacity = append(capacity, u)
	}
	sort.Strings(mass)
	sort.Strings(capacity)
	return SupportedUnits{Mass: mass, Capacity: capacity}
}
