package recipe

import (
	"errors"

	"recipebot-api/internal/pkg/common"
)

// ErrInsufficientData 表示模型以固定開場白拒絕生成
var ErrInsufficientData = errors.New("insufficient ingredient data")

// Status 生成結果的狀態
type Status int

const (
	StatusSuccess Status = iota
	StatusInsufficientData
	StatusFailure
)

// Outcome 協調器對呼叫端的回傳契約
// Success 帶食譜，InsufficientData 與 Failure 帶訊息
type Outcome struct {
	Status  Status
	Recipe  *common.Recipe
	Message string
}

func successOutcome(rec *common.Recipe) Outcome {
	return Outcome{Status: StatusSuccess, Recipe: rec}
}

func insufficientDataOutcome() Outcome {
	return Outcome{Status: StatusInsufficientData, Message: RefusalPrefix}
}

func failureOutcome(message string) Outcome {
	return Outcome{Status: StatusFailure, Message: message}
}
