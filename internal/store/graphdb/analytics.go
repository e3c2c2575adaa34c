package graphdb

import (
	"context"
	"sort"
	"time"

	"github.com/envgov/feedback-api/types"
)

const (
	overallQuery = `
MATCH (f:Feedback)
RETURN count(f) AS total_feedback,
       count(CASE WHEN f.feedback_type = 'positive' THEN 1 END) AS positive_count,
       count(CASE WHEN f.feedback_type = 'negative' THEN 1 END) AS negative_count`

	intentQuery = `
MATCH (f:Feedback)
WHERE f.detected_intent IS NOT NULL AND f.detected_intent <> ''
RETURN f.detected_intent AS intent_name,
       count(f) AS total_feedback,
       count(CASE WHEN f.feedback_type = 'positive' THEN 1 END) AS positive_count,
       count(CASE WHEN f.feedback_type = 'negative' THEN 1 END) AS negative_count,
       avg(f.confidence_score) AS avg_confidence`

	trendsQuery = `
MATCH (f:Feedback)
WHERE f.timestamp >= datetime() - duration({days: $days})
RETURN toString(date(f.timestamp)) AS date,
       f.feedback_type AS feedback_type,
       count(f) AS count
ORDER BY date DESC, feedback_type ASC`

	engagementQuery = `
MATCH (f:Feedback)
RETURN f.user_id AS user_id,
       count(f) AS total_feedback,
       count(CASE WHEN f.feedback_type = 'positive' THEN 1 END) AS positive_feedback,
       min(f.timestamp) AS first_feedback,
       max(f.timestamp) AS last_feedback
ORDER BY total_feedback DESC, user_id ASC
LIMIT $limit`

	categoryQuery = `
MATCH (f:Feedback)
WHERE f.categories IS NOT NULL
UNWIND f.categories AS category
RETURN category,
       f.feedback_type AS feedback_type,
       count(*) AS count
ORDER BY category ASC, feedback_type ASC`
)

// readRows runs an analytics query. Errors are logged and swallowed; callers
// fall back to their empty default.
func (g *Gateway) readRows(ctx context.Context, operation, cypher string, params map[string]any) ([]map[string]any, bool) {
	if g.exec == nil {
		return nil, false
	}
	if g.isClosed() {
		g.log.Warnw("Analytics query on closed store", "operation", operation)
		return nil, false
	}
	start := time.Now()
	rows, err := g.exec.read(ctx, cypher, params)
	g.metrics.observe(operation, start, err)
	if err != nil {
		g.log.Errorw("Analytics query failed", "operation", operation, "database", g.database, "error", err)
		return nil, false
	}
	return rows, true
}

// OverallAnalytics counts every record by sentiment.
func (g *Gateway) OverallAnalytics(ctx context.Context) types.OverallAnalytics {
	rows, ok := g.readRows(ctx, "overall_analytics", overallQuery, nil)
	if !ok || len(rows) == 0 {
		return types.OverallAnalytics{}
	}
	row := rows[0]
	out := types.OverallAnalytics{
		TotalFeedback: int64Value(row, "total_feedback"),
		PositiveCount: int64Value(row, "positive_count"),
		NegativeCount: int64Value(row, "negative_count"),
	}
	out.SatisfactionRate = satisfactionRate(out.PositiveCount, out.TotalFeedback)
	return out
}

// IntentPerformance groups records by detected intent, worst performing first.
func (g *Gateway) IntentPerformance(ctx context.Context) []types.IntentPerformance {
	out := []types.IntentPerformance{}
	rows, ok := g.readRows(ctx, "intent_performance", intentQuery, nil)
	if !ok {
		return out
	}
	for _, row := range rows {
		ip := types.IntentPerformance{
			IntentName:    stringValue(row, "intent_name"),
			TotalFeedback: int64Value(row, "total_feedback"),
			PositiveCount: int64Value(row, "positive_count"),
			NegativeCount: int64Value(row, "negative_count"),
		}
		ip.SatisfactionRate = satisfactionRate(ip.PositiveCount, ip.TotalFeedback)
		if avg := optionalFloat(row, "avg_confidence"); avg != nil {
			rounded := roundTo(*avg, 3)
			ip.AvgConfidence = &rounded
		}
		out = append(out, ip)
	}
	sortIntentPerformance(out)
	return out
}

func sortIntentPerformance(rows []types.IntentPerformance) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SatisfactionRate != rows[j].SatisfactionRate {
			return rows[i].SatisfactionRate < rows[j].SatisfactionRate
		}
		return rows[i].TotalFeedback > rows[j].TotalFeedback
	})
}

// Trends counts records per day and type over the trailing window.
func (g *Gateway) Trends(ctx context.Context, days int) []types.TrendPoint {
	out := []types.TrendPoint{}
	rows, ok := g.readRows(ctx, "trends", trendsQuery, map[string]any{"days": int64(days)})
	if !ok {
		return out
	}
	for _, row := range rows {
		out = append(out, types.TrendPoint{
			Date:         dateString(row, "date"),
			FeedbackType: stringValue(row, "feedback_type"),
			Count:        int64Value(row, "count"),
		})
	}
	return out
}

// UserEngagement lists the most active users. Records without a user are
// reported as one bucket with a nil user id.
func (g *Gateway) UserEngagement(ctx context.Context, limit int) []types.UserEngagement {
	out := []types.UserEngagement{}
	rows, ok := g.readRows(ctx, "user_engagement", engagementQuery, map[string]any{"limit": int64(limit)})
	if !ok {
		return out
	}
	for _, row := range rows {
		out = append(out, types.UserEngagement{
			UserID:           optionalString(row, "user_id"),
			TotalFeedback:    int64Value(row, "total_feedback"),
			PositiveFeedback: int64Value(row, "positive_feedback"),
			FirstFeedback:    timestampString(row, "first_feedback"),
			LastFeedback:     timestampString(row, "last_feedback"),
		})
	}
	return out
}

// CategoryInsights counts records per category tag and type.
func (g *Gateway) CategoryInsights(ctx context.Context) []types.CategoryInsight {
	out := []types.CategoryInsight{}
	rows, ok := g.readRows(ctx, "category_insights", categoryQuery, nil)
	if !ok {
		return out
	}
	for _, row := range rows {
		out = append(out, types.CategoryInsight{
			Category:     stringValue(row, "category"),
			FeedbackType: stringValue(row, "feedback_type"),
			Count:        int64Value(row, "count"),
		})
	}
	return out
}
