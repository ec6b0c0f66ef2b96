package recipe

import (
	"net/http"

	"recipebot-api/internal/core/ai/service"
	"recipebot-api/internal/core/ingredient"
	recipeService "recipebot-api/internal/core/recipe"
	"recipebot-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest 食譜生成請求
type GenerateRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1,max=20,dive,required"` // 帶數量的食材字串
}

// GenerateResponse 成功響應，與錯誤響應共用 status 欄位的兩形狀契約
type GenerateResponse struct {
	Status string         `json:"status"`
	Recipe *common.Recipe `json:"recipe"`
}

// Handler 食譜處理程序
type Handler struct {
	recipeService *recipeService.Service
	validator     *ingredient.Validator
}

// NewHandler 創建新的食譜處理程序
func NewHandler(recipeSvc *recipeService.Service, validator *ingredient.Validator) *Handler {
	return &Handler{
		recipeService: recipeSvc,
		validator:     validator,
	}
}

// HandleGenerate 處理 POST /api/recipe
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Status:  "error",
			Message: "Invalid request format",
		})
		return
	}

	ctx := service.WithRequestID(c.Request.Context(), requestID)
	outcome := h.recipeService.Generate(ctx, req.Ingredients)

	switch outcome.Status {
	case recipeService.StatusSuccess:
		c.JSON(http.StatusOK, GenerateResponse{
			Status: "success",
			Recipe: outcome.Recipe,
		})
	case recipeService.StatusInsufficientData:
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Status:  "error",
			Message: outcome.Message,
		})
	default:
		common.LogError("食譜生成失敗",
			zap.String("request_id", requestID),
			zap.String("message", outcome.Message),
		)
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Status:  "error",
			Message: outcome.Message,
		})
	}
}

// HandleSupportedUnits 處理 GET /api/recipe/units，回傳支援的單位詞彙表
func (h *Handler) HandleSupportedUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"units": h.validator.SupportedUnits(),
	})
}
