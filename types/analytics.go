package types

// OverallAnalytics aggregates every stored feedback record.
type OverallAnalytics struct {
	TotalFeedback    int64   `json:"total_feedback"`
	PositiveCount    int64   `json:"positive_count"`
	NegativeCount    int64   `json:"negative_count"`
	SatisfactionRate float64 `json:"satisfaction_rate"`
}

// IntentPerformance groups feedback by the intent the bot detected.
type IntentPerformance struct {
	IntentName       string   `json:"intent_name"`
	TotalFeedback    int64    `json:"total_feedback"`
	PositiveCount    int64    `json:"positive_count"`
	NegativeCount    int64    `json:"negative_count"`
	SatisfactionRate float64  `json:"satisfaction_rate"`
	AvgConfidence    *float64 `json:"avg_confidence"`
}

// TrendPoint counts feedback of one type on one calendar day.
type TrendPoint struct {
	Date         string `json:"date"`
	FeedbackType string `json:"feedback_type"`
	Count        int64  `json:"count"`
}

// UserEngagement summarizes one user's feedback history. A nil UserID is the
// bucket of records submitted without a user.
type UserEngagement struct {
	UserID           *string `json:"user_id"`
	TotalFeedback    int64   `json:"total_feedback"`
	PositiveFeedback int64   `json:"positive_feedback"`
	FirstFeedback    string  `json:"first_feedback"`
	LastFeedback     string  `json:"last_feedback"`
}

// CategoryInsight counts feedback of one type carrying one category tag.
type CategoryInsight struct {
	Category     string `json:"category"`
	FeedbackType string `json:"feedback_type"`
	Count        int64  `json:"count"`
}

const (
	DefaultTrendDays       = 30
	MinTrendDays           = 1
	MaxTrendDays           = 365
	DefaultEngagementLimit = 20
	MinEngagementLimit     = 1
	MaxEngagementLimit     = 100
)
