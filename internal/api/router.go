package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipebot-api/internal/api/handlers/health"
	recipeHandler "recipebot-api/internal/api/handlers/recipe"
	"recipebot-api/internal/api/middleware"
	"recipebot-api/internal/core/ai/cache"
	"recipebot-api/internal/core/ai/service"
	"recipebot-api/internal/core/ingredient"
	"recipebot-api/internal/core/prompt"
	recipeService "recipebot-api/internal/core/recipe"
	"recipebot-api/internal/infrastructure/config"
	"recipebot-api/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 整個請求的超時，涵蓋一次模型呼叫
	timeoutDuration = 120 * time.Second
	// 請求體大小限制，純文字食材清單用不到太多
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheStore cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.Deduplication(cfg))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.OpenRouter.Model),
		zap.String("template_path", cfg.Prompt.TemplatePath),
	)

	// 初始化服務
	aiService := service.NewService(cfg, cacheStore)

	promptBuilder, err := prompt.NewBuilder(cfg.Prompt.TemplatePath)
	if err != nil {
		common.LogError("Failed to load prompt template", zap.Error(err))
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	validator := ingredient.NewValidator()
	recipeSvc := recipeService.NewService(validator, promptBuilder, aiService)
	handler := recipeHandler.NewHandler(recipeSvc, validator)

	// 全局中間件：設置超時與配置注入
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"status":  "error",
				"message": "Request timeout",
			})
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api")
	{
		api.POST("/recipe", handler.HandleGenerate)
		api.GET("/recipe/units", handler.HandleSupportedUnits)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
