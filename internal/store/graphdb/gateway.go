// Package graphdb implements the feedback store on top of Neo4j.
package graphdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/envgov/feedback-api/config"
	"github.com/envgov/feedback-api/internal/store"
	"github.com/envgov/feedback-api/logger"
	"github.com/envgov/feedback-api/types"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jconfig "github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
	"go.uber.org/zap"
)

const pingQuery = "RETURN 1 AS status"

// indexStatements are idempotent; existing indexes are left alone.
var indexStatements = []struct {
	name   string
	cypher string
}{
	{"feedback_timestamp_idx", "CREATE INDEX feedback_timestamp_idx IF NOT EXISTS FOR (f:Feedback) ON (f.timestamp)"},
	{"feedback_type_idx", "CREATE INDEX feedback_type_idx IF NOT EXISTS FOR (f:Feedback) ON (f.feedback_type)"},
	{"feedback_rating_idx", "CREATE INDEX feedback_rating_idx IF NOT EXISTS FOR (f:Feedback) ON (f.rating_stars)"},
}

// Gateway owns the connection pool to the graph store. It is created once at
// startup, shared by every request, and closed once at shutdown.
type Gateway struct {
	exec     executor
	database string
	log      *zap.SugaredLogger
	metrics  *storeMetrics

	closeOnce sync.Once
	closeErr  error
	mu        sync.RWMutex
	closed    bool
}

var _ store.FeedbackStore = (*Gateway)(nil)

// Connect opens the driver, pings the server with a trivial query and
// returns a ready gateway. Any failure is reported as store.ErrUnavailable.
func Connect(ctx context.Context, cfg config.Neo4jConfig) (*Gateway, error) {
	log := logger.GetLogger().Named("graphdb")

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4jconfig.Config) {
			c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
			c.ConnectionAcquisitionTimeout = time.Duration(cfg.ConnectionAcquisitionTimeoutSeconds) * time.Second
			// Failed transactions surface to the caller instead of being replayed.
			c.MaxTransactionRetryTime = 0
		})
	if err != nil {
		return nil, fmt.Errorf("%w: creating driver: %v", store.ErrUnavailable, err)
	}

	exec := &neo4jExecutor{driver: driver, database: cfg.Database}
	if err := exec.ping(ctx); err != nil {
		_ = driver.Close(ctx)
		log.Errorw("Graph store connectivity check failed",
			"uri", logger.MaskConnectionString(cfg.URI),
			"database", cfg.Database,
			"error", err)
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	log.Infow("Connected to graph store",
		"uri", logger.MaskConnectionString(cfg.URI),
		"database", cfg.Database,
		"max_pool_size", cfg.MaxConnectionPoolSize)

	return newGateway(exec, cfg.Database, log), nil
}

func newGateway(exec executor, database string, log *zap.SugaredLogger) *Gateway {
	return &Gateway{
		exec:     exec,
		database: database,
		log:      log,
		metrics:  newStoreMetrics(),
	}
}

// Database returns the logical database name records are written to.
func (g *Gateway) Database() string {
	return g.database
}

// EnsureIndexes creates the lookup indexes. Failures are logged as warnings
// and never abort startup.
func (g *Gateway) EnsureIndexes(ctx context.Context) {
	if g.exec == nil {
		return
	}
	for _, idx := range indexStatements {
		start := time.Now()
		err := g.exec.schema(ctx, idx.cypher)
		g.metrics.observe("ensure_index", start, err)
		if err != nil {
			g.log.Warnw("Failed to create index", "index", idx.name, "error", err)
			continue
		}
		g.log.Debugw("Index ensured", "index", idx.name)
	}
}

// Close releases the connection pool. It is safe to call more than once and
// on a nil gateway.
func (g *Gateway) Close(ctx context.Context) error {
	if g == nil {
		return nil
	}
	g.closeOnce.Do(func() {
		g.mu.Lock()
		g.closed = true
		g.mu.Unlock()

		if g.exec == nil {
			return
		}
		g.closeErr = g.exec.close(ctx)
		if g.closeErr != nil {
			g.log.Warnw("Error closing graph store driver", "error", g.closeErr)
			return
		}
		g.log.Info("Graph store connection closed")
	})
	return g.closeErr
}

func (g *Gateway) isClosed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.closed
}

// Health pings the store and reports reachability. It never fails.
func (g *Gateway) Health(ctx context.Context) types.HealthStatus {
	status := types.HealthStatus{
		Status:       types.HealthUnhealthy,
		Database:     types.DatabaseDisconnected,
		DatabaseName: g.database,
		Timestamp:    types.NowTimestamp(),
	}
	if g.exec == nil || g.isClosed() {
		status.Error = store.ErrClosed.Error()
		return status
	}

	start := time.Now()
	err := g.exec.ping(ctx)
	g.metrics.observe("health", start, err)
	if err != nil {
		g.log.Warnw("Health check failed", "database", g.database, "error", err)
		status.Database = types.DatabaseError
		status.Error = err.Error()
		return status
	}

	status.Status = types.HealthHealthy
	status.Database = types.DatabaseConnected
	return status
}
