package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/envgov/feedback-api/internal/store/mocks"
	"github.com/envgov/feedback-api/logger"
	"github.com/envgov/feedback-api/types"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	os.Exit(m.Run())
}

func healthyStatus() types.HealthStatus {
	return types.HealthStatus{
		Status:       types.HealthHealthy,
		Database:     types.DatabaseConnected,
		DatabaseName: "neo4j",
		Timestamp:    types.NowTimestamp(),
	}
}

func TestCheckHealth_Healthy(t *testing.T) {
	st := new(mocks.FeedbackStore)
	st.On("Health", mock.Anything).Return(healthyStatus())

	svc := NewHealthService(st, nil, "1.2.3")
	got := svc.CheckHealth(context.Background())

	assert.True(t, got.Healthy())
	assert.Equal(t, "1.2.3", got.Version)
	assert.Empty(t, got.Redis)
	st.AssertExpectations(t)
}

func TestCheckHealth_StoreDown(t *testing.T) {
	st := new(mocks.FeedbackStore)
	st.On("Health", mock.Anything).Return(types.HealthStatus{
		Status:       types.HealthUnhealthy,
		Database:     types.DatabaseError,
		DatabaseName: "neo4j",
		Error:        "connection refused",
	})

	got := NewHealthService(st, nil, "dev").CheckHealth(context.Background())
	assert.False(t, got.Healthy())
	assert.Equal(t, "connection refused", got.Error)
}

func TestCheckHealth_NilStore(t *testing.T) {
	got := NewHealthService(nil, nil, "dev").CheckHealth(context.Background())
	assert.Equal(t, types.HealthUnhealthy, got.Status)
	assert.Equal(t, types.DatabaseDisconnected, got.Database)
	assert.NotEmpty(t, got.Timestamp)
}

func TestCheckHealth_Redis(t *testing.T) {
	t.Run("redis up", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		redisMock.ExpectPing().SetVal("PONG")

		st := new(mocks.FeedbackStore)
		st.On("Health", mock.Anything).Return(healthyStatus())

		got := NewHealthService(st, client, "dev").CheckHealth(context.Background())
		assert.True(t, got.Healthy())
		assert.Equal(t, types.DatabaseConnected, got.Redis)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("redis down does not fail health", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		redisMock.ExpectPing().SetErr(errors.New("dial tcp: refused"))

		st := new(mocks.FeedbackStore)
		st.On("Health", mock.Anything).Return(healthyStatus())

		got := NewHealthService(st, client, "dev").CheckHealth(context.Background())
		assert.True(t, got.Healthy())
		assert.Equal(t, types.DatabaseError, got.Redis)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
