package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/envgov/feedback-api/internal/store/mocks"
	"github.com/envgov/feedback-api/logger"
	"github.com/envgov/feedback-api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	os.Exit(m.Run())
}

const fixtureYAML = `
feedback:
  - user_query: "What are the waste management policies?"
    bot_response: "Small businesses must separate recyclables."
    feedback_type: positive
    rating_stars: 5
    categories: [helpful, accurate]
    timestamp: "2025-01-15T10:30:00Z"
    detected_intent: waste_management_policy
    confidence_score: 0.91
    user_id: user_101
  - user_query: "Is the air safe today?"
    bot_response: "I do not know."
    feedback_type: negative
    rating_stars: 1
    timestamp: "2025-01-16T08:00:00"
`

func TestParseFixtures(t *testing.T) {
	records, err := parseFixtures(strings.NewReader(fixtureYAML))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, types.FeedbackPositive, first.FeedbackType)
	assert.Equal(t, 5, first.RatingStars)
	assert.Equal(t, []string{"helpful", "accurate"}, first.Categories)
	assert.Equal(t, time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC), first.Timestamp.UTC())
	assert.Equal(t, "waste_management_policy", first.DetectedIntent)
	require.NotNil(t, first.ConfidenceScore)
	assert.InDelta(t, 0.91, *first.ConfidenceScore, 1e-9)
	assert.Equal(t, "user_101", first.UserID)

	second := records[1]
	assert.Equal(t, types.FeedbackNegative, second.FeedbackType)
	assert.Equal(t, []string{}, second.Categories)
	assert.Empty(t, second.UserID)
	assert.Nil(t, second.ConfidenceScore)
}

func TestParseFixturesErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty document",
			input:   "feedback: []\n",
			wantErr: "no feedback records",
		},
		{
			name:    "unknown field",
			input:   "feedback:\n  - user_query: a\n    sentiment: good\n",
			wantErr: "decoding fixtures",
		},
		{
			name: "invalid record",
			input: `feedback:
  - user_query: "q"
    bot_response: "r"
    feedback_type: neutral
    rating_stars: 9
    timestamp: "2025-01-15T10:30:00Z"
`,
			wantErr: "feedback_type: Must be one of: positive, negative.; rating_stars: Must be between 1 and 5.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFixtures(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSampleFeedback(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := sampleFeedback(rand.New(rand.NewSource(42)), "abcd1234", 40, now)
	require.Len(t, records, 40)

	for i, fb := range records {
		assert.True(t, fb.FeedbackType.Valid(), "record %d", i)
		assert.GreaterOrEqual(t, fb.RatingStars, types.MinRatingStars)
		assert.LessOrEqual(t, fb.RatingStars, types.MaxRatingStars)
		if fb.FeedbackType == types.FeedbackPositive {
			assert.GreaterOrEqual(t, fb.RatingStars, 4)
		} else {
			assert.LessOrEqual(t, fb.RatingStars, 2)
		}
		assert.NotEmpty(t, fb.UserQuery)
		assert.NotEmpty(t, fb.DetectedIntent)
		assert.NotEmpty(t, fb.UserID)
		assert.NotEmpty(t, fb.Categories)
		require.NotNil(t, fb.ConfidenceScore)
		assert.GreaterOrEqual(t, *fb.ConfidenceScore, 0.6)
		assert.Less(t, *fb.ConfidenceScore, 0.95)
		assert.True(t, strings.HasPrefix(fb.MessageID, "seed-abcd1234-"))
		assert.False(t, fb.Timestamp.After(now))
		assert.True(t, fb.Timestamp.After(now.Add(-31*24*time.Hour)))
	}

	again := sampleFeedback(rand.New(rand.NewSource(42)), "abcd1234", 40, now)
	assert.Equal(t, records, again)
}

func TestSeedFeedback(t *testing.T) {
	records := sampleFeedback(rand.New(rand.NewSource(7)), "batch", 20, time.Now())

	t.Run("all stored", func(t *testing.T) {
		st := new(mocks.FeedbackStore)
		st.On("StoreFeedback", mock.Anything, mock.Anything).Return(nil).Times(len(records))

		res, err := seedFeedback(context.Background(), st, records, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(20), res.Stored)
		assert.Equal(t, int64(0), res.Failed)
		st.AssertExpectations(t)
	})

	t.Run("failures are counted", func(t *testing.T) {
		target := records[3]
		st := new(mocks.FeedbackStore)
		st.On("StoreFeedback", mock.Anything, target).Return(errors.New("write not confirmed"))
		st.On("StoreFeedback", mock.Anything, mock.Anything).Return(nil)

		res, err := seedFeedback(context.Background(), st, records, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(19), res.Stored)
		assert.Equal(t, int64(1), res.Failed)
	})

	t.Run("cancelled context stops seeding", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		st := new(mocks.FeedbackStore)

		res, err := seedFeedback(ctx, st, records, 1)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int64(0), res.Stored)
		st.AssertNotCalled(t, "StoreFeedback", mock.Anything, mock.Anything)
	})
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr strings.Builder

	assert.Equal(t, 2, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: feedbackctl")

	stderr.Reset()
	assert.Equal(t, 2, run(context.Background(), []string{"migrate"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "migrate"`)

	assert.Equal(t, 0, run(context.Background(), []string{"help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "commands:")
}
