package router

import (
	"time"

	"github.com/envgov/feedback-api/config"
	"github.com/envgov/feedback-api/handlers"
	"github.com/envgov/feedback-api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config           *config.Config
	FeedbackHandler  *handlers.FeedbackHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	HealthHandler    *handlers.HealthHandler
	// RedisClient backs the ingestion rate limiter; nil disables it.
	RedisClient *redis.Client
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Order matters: Recovery sits inside ErrorHandler so recovered panics
	// are rendered as envelopes on the way out.
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Recovery())

	r.NoRoute(middleware.NoRoute())
	r.NoMethod(middleware.NoMethod())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !deps.Config.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		api.GET("/health", deps.HealthHandler.Health)

		submit := []gin.HandlerFunc{}
		if deps.Config.RateLimit.Enabled && deps.RedisClient != nil {
			window := time.Duration(deps.Config.RateLimit.WindowSeconds) * time.Second
			submit = append(submit, middleware.FeedbackRateLimiter(deps.RedisClient, deps.Config.RateLimit.FeedbackRequestsPerMinute, window))
		}
		submit = append(submit, deps.FeedbackHandler.SubmitFeedback)
		api.POST("/feedback", submit...)

		feedback := api.Group("/feedback")
		{
			feedback.GET("/analytics", deps.AnalyticsHandler.Overall)
			feedback.GET("/trends", deps.AnalyticsHandler.Trends)
			feedback.GET("/intents", deps.AnalyticsHandler.Intents)
			feedback.GET("/engagement", deps.AnalyticsHandler.Engagement)
			feedback.GET("/categories", deps.AnalyticsHandler.Categories)
		}
	}

	return r
}
