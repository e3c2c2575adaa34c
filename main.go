package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envgov/feedback-api/config"
	_ "github.com/envgov/feedback-api/docs"
	"github.com/envgov/feedback-api/handlers"
	"github.com/envgov/feedback-api/internal/store/graphdb"
	"github.com/envgov/feedback-api/logger"
	"github.com/envgov/feedback-api/router"
	"github.com/envgov/feedback-api/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// @title        Chatbot Feedback API
// @version      1.0
// @description  Collects user feedback on chatbot answers and serves analytics over it.
// @BasePath     /api
func main() {
	// A missing .env is fine; the process environment wins either way.
	_ = godotenv.Load()

	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	if err := run(); err != nil {
		log.Errorw("Application startup failed", "error", err)
		_ = logger.Close()
		os.Exit(1)
	}
}

func run() error {
	log := logger.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	printStartupInfo(cfg)

	ctx := context.Background()

	log.Info("Initializing graph store gateway...")
	gateway, err := graphdb.Connect(ctx, cfg.Neo4j)
	// Close is nil safe, so cleanup runs even when Connect failed.
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := gateway.Close(closeCtx); err != nil {
			log.Warnw("Graph store cleanup reported an error", "error", err)
		}
		log.Info("Application cleanup completed")
	}()
	if err != nil {
		return err
	}
	gateway.EnsureIndexes(ctx)

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = newRedisClient(cfg.Redis)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			// The limiter fails open, so an unreachable Redis only disables throttling.
			log.Warnw("Redis not reachable, feedback rate limiting will fail open",
				"address", cfg.Redis.Address, "error", err)
		}
	}

	healthService := services.NewHealthService(gateway, redisClient, cfg.Server.Version)

	r := router.SetupRouter(router.Dependencies{
		Config:           cfg,
		FeedbackHandler:  handlers.NewFeedbackHandler(gateway),
		AnalyticsHandler: handlers.NewAnalyticsHandler(gateway),
		HealthHandler:    handlers.NewHealthHandler(healthService),
		RedisClient:      redisClient,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("Starting HTTP server", "addr", srv.Addr, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return err
		}
		return nil
	case sig := <-quit:
		log.Infow("Shutting down gracefully...", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
		return err
	}
	log.Info("Server exited")
	return nil
}

func newRedisClient(cfg config.RedisConfig) *redis.Client {
	opts := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opts)
}

var endpoints = []string{
	"GET  /api/health              - Service health check",
	"POST /api/feedback            - Store user feedback",
	"GET  /api/feedback/analytics  - Overall analytics",
	"GET  /api/feedback/trends     - Feedback trends",
	"GET  /api/feedback/intents    - Intent performance",
	"GET  /api/feedback/engagement - User engagement",
	"GET  /api/feedback/categories - Category insights",
}

func printStartupInfo(cfg *config.Config) {
	log := logger.GetLogger()
	log.Infow("Chatbot Feedback API",
		"neo4j_uri", logger.MaskConnectionString(cfg.Neo4j.URI),
		"neo4j_user", cfg.Neo4j.Username,
		"neo4j_database", cfg.Neo4j.Database,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"debug", cfg.Server.Debug,
		"version", cfg.Server.Version,
	)
	for _, e := range endpoints {
		log.Infof("  %s", e)
	}
	if !cfg.IsProduction() {
		log.Info("  GET  /swagger/index.html      - API documentation")
	}
}
