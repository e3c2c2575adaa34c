package graphdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/envgov/feedback-api/internal/store"
	"github.com/envgov/feedback-api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFeedback() *types.Feedback {
	return &types.Feedback{
		UserQuery:    "When is the library open?",
		BotResponse:  "9am to 5pm on weekdays.",
		FeedbackType: types.FeedbackPositive,
		RatingStars:  4,
		Categories:   []string{"libraries"},
		Timestamp:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.FixedZone("", 2*3600)),
	}
}

func TestStoreFeedback_Success(t *testing.T) {
	exec := newFakeExecutor()
	exec.rows["CREATE (f:Feedback"] = []map[string]any{{"node_id": "4:abc:1"}}
	gw := newTestGateway(exec)

	err := gw.StoreFeedback(context.Background(), sampleFeedback())
	require.NoError(t, err)

	writes := exec.callsOf("write")
	require.Len(t, writes, 1)
	params := writes[0].params
	assert.Equal(t, "When is the library open?", params["user_query"])
	assert.Equal(t, "positive", params["feedback_type"])
	assert.Equal(t, int64(4), params["rating_stars"])
	assert.Equal(t, "", params["user_comment"])
	assert.Equal(t, "", params["message_id"])
	assert.Equal(t, []string{"libraries"}, params["categories"])
	assert.Nil(t, params["user_id"])
	assert.Nil(t, params["detected_intent"])
	assert.Nil(t, params["confidence_score"])

	ts, ok := params["timestamp"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.UTC, ts.Location())
	assert.True(t, ts.Equal(time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)))
}

func TestStoreFeedback_ProducerFields(t *testing.T) {
	exec := newFakeExecutor()
	exec.rows["CREATE (f:Feedback"] = []map[string]any{{"node_id": "4:abc:2"}}
	gw := newTestGateway(exec)

	conf := 0.82
	fb := sampleFeedback()
	fb.DetectedIntent = "opening_hours"
	fb.ConfidenceScore = &conf
	fb.UserID = "user-7"
	fb.Categories = nil

	require.NoError(t, gw.StoreFeedback(context.Background(), fb))
	params := exec.callsOf("write")[0].params
	assert.Equal(t, "opening_hours", params["detected_intent"])
	assert.Equal(t, 0.82, params["confidence_score"])
	assert.Equal(t, "user-7", params["user_id"])
	assert.Equal(t, []string{}, params["categories"])
}

func TestStoreFeedback_Failures(t *testing.T) {
	t.Run("driver error", func(t *testing.T) {
		exec := newFakeExecutor()
		exec.err = errors.New("connection reset")
		err := newTestGateway(exec).StoreFeedback(context.Background(), sampleFeedback())
		assert.EqualError(t, err, "connection reset")
	})

	t.Run("no node returned", func(t *testing.T) {
		exec := newFakeExecutor()
		err := newTestGateway(exec).StoreFeedback(context.Background(), sampleFeedback())
		assert.ErrorIs(t, err, store.ErrWriteNotConfirmed)
	})

	t.Run("panic is recovered", func(t *testing.T) {
		exec := newFakeExecutor()
		exec.panicOn = "CREATE (f:Feedback"
		err := newTestGateway(exec).StoreFeedback(context.Background(), sampleFeedback())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "driver exploded")
	})

	t.Run("closed gateway", func(t *testing.T) {
		exec := newFakeExecutor()
		gw := newTestGateway(exec)
		require.NoError(t, gw.Close(context.Background()))
		err := gw.StoreFeedback(context.Background(), sampleFeedback())
		assert.ErrorIs(t, err, store.ErrClosed)
		assert.Empty(t, exec.callsOf("write"))
	})
}

func TestEnsureIndexes(t *testing.T) {
	exec := newFakeExecutor()
	newTestGateway(exec).EnsureIndexes(context.Background())

	schema := exec.callsOf("schema")
	require.Len(t, schema, 3)
	assert.Contains(t, schema[0].cypher, "feedback_timestamp_idx")
	assert.Contains(t, schema[1].cypher, "feedback_type_idx")
	assert.Contains(t, schema[2].cypher, "feedback_rating_idx")
	for _, call := range schema {
		assert.Contains(t, call.cypher, "IF NOT EXISTS")
	}
}

func TestEnsureIndexes_FailuresAreNotFatal(t *testing.T) {
	exec := newFakeExecutor()
	exec.schemaErr = errors.New("permission denied")
	gw := newTestGateway(exec)

	assert.NotPanics(t, func() { gw.EnsureIndexes(context.Background()) })
	assert.Len(t, exec.callsOf("schema"), 3)
}

func TestClose_Idempotent(t *testing.T) {
	exec := newFakeExecutor()
	gw := newTestGateway(exec)

	require.NoError(t, gw.Close(context.Background()))
	require.NoError(t, gw.Close(context.Background()))
	assert.Equal(t, 1, exec.closes)

	var nilGateway *Gateway
	assert.NoError(t, nilGateway.Close(context.Background()))
}

func TestZeroValueGateway(t *testing.T) {
	ctx := context.Background()
	var gw Gateway

	assert.NotPanics(t, func() {
		assert.ErrorIs(t, gw.StoreFeedback(ctx, sampleFeedback()), store.ErrClosed)
		gw.EnsureIndexes(ctx)
		assert.Equal(t, types.OverallAnalytics{}, gw.OverallAnalytics(ctx))
		assert.Empty(t, gw.IntentPerformance(ctx))
		assert.Empty(t, gw.Trends(ctx, 7))
		assert.Empty(t, gw.UserEngagement(ctx, 5))
		assert.Empty(t, gw.CategoryInsights(ctx))
		assert.Equal(t, types.DatabaseDisconnected, gw.Health(ctx).Database)
		assert.NoError(t, gw.Close(ctx))
	})
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		gw := newTestGateway(newFakeExecutor())
		status := gw.Health(context.Background())
		assert.Equal(t, types.HealthHealthy, status.Status)
		assert.Equal(t, types.DatabaseConnected, status.Database)
		assert.Equal(t, "neo4j", status.DatabaseName)
		assert.Empty(t, status.Error)
		_, err := time.Parse(time.RFC3339, status.Timestamp)
		assert.NoError(t, err)
	})

	t.Run("ping fails", func(t *testing.T) {
		exec := newFakeExecutor()
		exec.pingErr = errors.New("server unreachable")
		status := newTestGateway(exec).Health(context.Background())
		assert.Equal(t, types.HealthUnhealthy, status.Status)
		assert.Equal(t, types.DatabaseError, status.Database)
		assert.Equal(t, "server unreachable", status.Error)
	})

	t.Run("closed", func(t *testing.T) {
		exec := newFakeExecutor()
		gw := newTestGateway(exec)
		require.NoError(t, gw.Close(context.Background()))
		status := gw.Health(context.Background())
		assert.Equal(t, types.HealthUnhealthy, status.Status)
		assert.Equal(t, types.DatabaseDisconnected, status.Database)
		assert.Empty(t, exec.callsOf("ping"))
	})
}

func TestDatabase(t *testing.T) {
	assert.Equal(t, "neo4j", newTestGateway(newFakeExecutor()).Database())
}
