package services

import (
	"context"

	"github.com/envgov/feedback-api/internal/store"
	"github.com/envgov/feedback-api/logger"
	"github.com/envgov/feedback-api/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HealthService reports on the graph store and, when rate limiting is
// enabled, the Redis instance backing it.
type HealthService struct {
	store       store.FeedbackStore
	redisClient *redis.Client
	version     string
	log         *zap.SugaredLogger
}

// NewHealthService builds a health service. redisClient may be nil.
func NewHealthService(feedbackStore store.FeedbackStore, redisClient *redis.Client, version string) *HealthService {
	return &HealthService{
		store:       feedbackStore,
		redisClient: redisClient,
		version:     version,
		log:         logger.GetLogger().Named("health"),
	}
}

// CheckHealth checks the graph store. Overall status follows the store only;
// the rate limiter fails open, so a Redis outage is reported but not fatal.
func (h *HealthService) CheckHealth(ctx context.Context) types.HealthStatus {
	var status types.HealthStatus
	if h.store == nil {
		status = types.HealthStatus{
			Status:    types.HealthUnhealthy,
			Database:  types.DatabaseDisconnected,
			Error:     "storage service not initialized",
			Timestamp: types.NowTimestamp(),
		}
	} else {
		status = h.store.Health(ctx)
	}
	status.Version = h.version

	if h.redisClient != nil {
		status.Redis = h.checkRedis(ctx)
	}

	if !status.Healthy() {
		h.log.Warnw("Health check failed", "database", status.Database, "error", status.Error)
	}
	return status
}

func (h *HealthService) checkRedis(ctx context.Context) string {
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.DatabaseError
	}
	return types.DatabaseConnected
}
