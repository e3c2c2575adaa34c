package store

import (
	"context"

	"github.com/envgov/feedback-api/types"
)

// FeedbackStore persists feedback records and answers analytics queries over
// them. Implementations must be safe for concurrent use.
//
// Analytics methods never fail: on a store error they log and return their
// empty default so dashboards keep rendering.
type FeedbackStore interface {
	// Database names the logical database the store writes to.
	Database() string
	// StoreFeedback writes one record. A nil error means the write committed.
	StoreFeedback(ctx context.Context, fb *types.Feedback) error
	Health(ctx context.Context) types.HealthStatus

	OverallAnalytics(ctx context.Context) types.OverallAnalytics
	IntentPerformance(ctx context.Context) []types.IntentPerformance
	Trends(ctx context.Context, days int) []types.TrendPoint
	UserEngagement(ctx context.Context, limit int) []types.UserEngagement
	CategoryInsights(ctx context.Context) []types.CategoryInsight

	Close(ctx context.Context) error
}
