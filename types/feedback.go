package types

import "time"

// FeedbackType is the sentiment label of a feedback record.
type FeedbackType string

const (
	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
)

// Valid reports whether t is one of the two stored sentiment labels.
func (t FeedbackType) Valid() bool {
	return t == FeedbackPositive || t == FeedbackNegative
}

const (
	MinRatingStars = 1
	MaxRatingStars = 5
)

// Feedback is one validated judgment about a single bot answer, ready to be
// persisted. created_at is assigned by the store at commit time.
type Feedback struct {
	UserQuery    string       `json:"user_query"`
	BotResponse  string       `json:"bot_response"`
	FeedbackType FeedbackType `json:"feedback_type"`
	UserComment  string       `json:"user_comment"`
	RatingStars  int          `json:"rating_stars"`
	MessageID    string       `json:"message_id"`
	Categories   []string     `json:"categories"`
	Timestamp    time.Time    `json:"timestamp"`

	// Populated by upstream producers, never by the HTTP ingestion path.
	DetectedIntent  string   `json:"-"`
	ConfidenceScore *float64 `json:"-"`
	UserID          string   `json:"-"`
}

// FeedbackCreate represents the request body for submitting feedback.
// Pointer fields distinguish "absent" from zero values; unknown fields are ignored.
type FeedbackCreate struct {
	UserQuery    *string  `json:"user_query" binding:"required"`
	BotResponse  *string  `json:"bot_response" binding:"required"`
	FeedbackType *string  `json:"feedback_type" binding:"required,oneof=positive negative"`
	UserComment  *string  `json:"user_comment"`
	RatingStars  *int     `json:"rating_stars" binding:"required,min=1,max=5"`
	MessageID    *string  `json:"message_id"`
	Categories   []string `json:"categories"`
	Timestamp    *string  `json:"timestamp" binding:"required"`
}

// FeedbackStored is the data echoed back after a successful write.
type FeedbackStored struct {
	Database     string       `json:"database"`
	StoredAt     string       `json:"stored_at"`
	FeedbackType FeedbackType `json:"feedback_type"`
	RatingStars  int          `json:"rating_stars"`
}
