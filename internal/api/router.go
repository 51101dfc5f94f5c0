package api

import (
	"context"
	"net/http"
	"time"

	healthHandler "recipe-parser/internal/api/handlers/health"
	parseHandler "recipe-parser/internal/api/handlers/parse"
	"recipe-parser/internal/api/middleware"
	"recipe-parser/internal/core/cache"
	"recipe-parser/internal/core/image"
	"recipe-parser/internal/core/tabular"
	"recipe-parser/internal/core/vision"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	timeoutDuration = 120 * time.Second
	maxBodySize     = 10 << 20 // 10MB
)

// SetupRouter wires middleware, services and routes.
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager, categoryImages tabular.CategoryImageFunc) (*gin.Engine, error) {
	common.LogInfo("starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	// Per-request timeout.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
			})
		}
	})

	common.LogInfo("initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("vision_enabled", cfg.Vision.Enabled),
		zap.String("model", cfg.Vision.Model),
		zap.String("default_language", cfg.Parser.DefaultLanguage),
	)

	visionClient := vision.NewClient(cfg)
	imageService := image.NewService(cfg.Image.MaxSizeBytes)

	parser := parseHandler.NewHandler(cfg)
	// The OCR engine is external; the wired recognizer is the vision
	// client asked for a plain transcription.
	capture := parseHandler.NewCaptureHandler(visionClient.Recognizer(), visionClient, imageService, cacheManager)
	health := healthHandler.NewHandler(cfg, cacheManager)

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api/v1")
	{
		parseGroup := api.Group("/parse")
		{
			parseGroup.POST("/text", parser.HandleParseText)
			parseGroup.POST("/smart", parser.HandleParseSmart)
			parseGroup.POST("/classify", parser.HandleClassify)
			parseGroup.POST("/validate", parser.HandleValidate)
		}

		importGroup := api.Group("/import")
		{
			importGroup.POST("/csv", parser.HandleImportCSV(categoryImages))
			importGroup.POST("/notion", parser.HandleImportNotion)
		}

		captureGroup := api.Group("/capture")
		{
			captureGroup.POST("/ocr", capture.HandleCaptureOCR)
			captureGroup.POST("/vision", capture.HandleCaptureVision)
		}
	}

	common.LogInfo("router setup completed")

	return router, nil
}
