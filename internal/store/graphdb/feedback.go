package graphdb

import (
	"context"
	"fmt"
	"time"

	"github.com/envgov/feedback-api/internal/store"
	"github.com/envgov/feedback-api/types"
)

const createFeedbackQuery = `
CREATE (f:Feedback {
	user_query: $user_query,
	bot_response: $bot_response,
	feedback_type: $feedback_type,
	user_comment: $user_comment,
	rating_stars: $rating_stars,
	message_id: $message_id,
	categories: $categories,
	timestamp: $timestamp,
	detected_intent: $detected_intent,
	confidence_score: $confidence_score,
	user_id: $user_id,
	created_at: datetime()
})
RETURN elementId(f) AS node_id`

// feedbackParams maps a record onto query parameters. Empty optional
// producer fields become null so the property is left unset.
func feedbackParams(fb *types.Feedback) map[string]any {
	categories := fb.Categories
	if categories == nil {
		categories = []string{}
	}
	params := map[string]any{
		"user_query":       fb.UserQuery,
		"bot_response":     fb.BotResponse,
		"feedback_type":    string(fb.FeedbackType),
		"user_comment":     fb.UserComment,
		"rating_stars":     int64(fb.RatingStars),
		"message_id":       fb.MessageID,
		"categories":       categories,
		"timestamp":        fb.Timestamp.UTC(),
		"detected_intent":  nilIfEmpty(fb.DetectedIntent),
		"confidence_score": nil,
		"user_id":          nilIfEmpty(fb.UserID),
	}
	if fb.ConfidenceScore != nil {
		params["confidence_score"] = *fb.ConfidenceScore
	}
	return params
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// StoreFeedback writes one feedback node in a single write transaction.
// A nil error means exactly one node was committed.
func (g *Gateway) StoreFeedback(ctx context.Context, fb *types.Feedback) (err error) {
	if fb == nil {
		return fmt.Errorf("nil feedback")
	}
	if g.exec == nil || g.isClosed() {
		return store.ErrClosed
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic storing feedback: %v", r)
			g.log.Errorw("Recovered panic while storing feedback", "panic", r)
		}
		g.metrics.observe("store_feedback", start, err)
	}()

	rows, err := g.exec.write(ctx, createFeedbackQuery, feedbackParams(fb))
	if err != nil {
		g.log.Errorw("Failed to store feedback",
			"feedback_type", fb.FeedbackType,
			"rating_stars", fb.RatingStars,
			"database", g.database,
			"error", err)
		return err
	}
	if len(rows) == 0 || stringValue(rows[0], "node_id") == "" {
		g.log.Errorw("Feedback write returned no node",
			"feedback_type", fb.FeedbackType,
			"database", g.database)
		return store.ErrWriteNotConfirmed
	}

	g.log.Infow("Feedback stored",
		"feedback_type", fb.FeedbackType,
		"rating_stars", fb.RatingStars,
		"database", g.database,
		"node_id", stringValue(rows[0], "node_id"))
	return nil
}
