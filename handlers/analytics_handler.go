package handlers

import (
	"fmt"

	"github.com/envgov/feedback-api/errors"
	"github.com/envgov/feedback-api/internal/store"
	"github.com/envgov/feedback-api/types"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the read-only analytics views over stored feedback.
// Store failures surface as empty results, never as errors.
type AnalyticsHandler struct {
	feedbackStore store.FeedbackStore
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(feedbackStore store.FeedbackStore) *AnalyticsHandler {
	return &AnalyticsHandler{feedbackStore: feedbackStore}
}

func (h *AnalyticsHandler) available(c *gin.Context) bool {
	if h.feedbackStore == nil {
		_ = c.Error(errors.ServiceUnavailable("Storage service not available", ""))
		return false
	}
	return true
}

// Overall godoc
// @Summary      Overall analytics
// @Description  Totals and satisfaction rate across all feedback
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  types.SuccessResponse{data=types.OverallAnalytics}
// @Failure      503  {object}  types.ErrorResponse
// @Router       /feedback/analytics [get]
func (h *AnalyticsHandler) Overall(c *gin.Context) {
	if !h.available(c) {
		return
	}
	analytics := h.feedbackStore.OverallAnalytics(c.Request.Context())
	if analytics.TotalFeedback == 0 {
		respondOK(c, "No feedback data available", analytics)
		return
	}
	respondOK(c, "Analytics retrieved successfully", analytics)
}

// Trends godoc
// @Summary      Feedback trends
// @Description  Daily counts per feedback type over a trailing window
// @Tags         analytics
// @Produce      json
// @Param        days  query     int  false  "Window in days (1-365)"  default(30)
// @Success      200   {object}  types.SuccessResponse{data=[]types.TrendPoint}
// @Failure      400   {object}  types.ErrorResponse
// @Failure      503   {object}  types.ErrorResponse
// @Router       /feedback/trends [get]
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	days, ok := queryIntInRange(c, "days", types.DefaultTrendDays, types.MinTrendDays, types.MaxTrendDays)
	if !ok || !h.available(c) {
		return
	}
	trends := h.feedbackStore.Trends(c.Request.Context(), days)
	respondOK(c, fmt.Sprintf("Trends for last %d days retrieved successfully", days), trends)
}

// Intents godoc
// @Summary      Intent performance
// @Description  Satisfaction per detected intent, worst first
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  types.SuccessResponse{data=[]types.IntentPerformance}
// @Failure      503  {object}  types.ErrorResponse
// @Router       /feedback/intents [get]
func (h *AnalyticsHandler) Intents(c *gin.Context) {
	if !h.available(c) {
		return
	}
	respondOK(c, "Intent performance retrieved successfully", h.feedbackStore.IntentPerformance(c.Request.Context()))
}

// Engagement godoc
// @Summary      User engagement
// @Description  Most active users by feedback count
// @Tags         analytics
// @Produce      json
// @Param        limit  query     int  false  "Maximum rows (1-100)"  default(20)
// @Success      200    {object}  types.SuccessResponse{data=[]types.UserEngagement}
// @Failure      400    {object}  types.ErrorResponse
// @Failure      503    {object}  types.ErrorResponse
// @Router       /feedback/engagement [get]
func (h *AnalyticsHandler) Engagement(c *gin.Context) {
	limit, ok := queryIntInRange(c, "limit", types.DefaultEngagementLimit, types.MinEngagementLimit, types.MaxEngagementLimit)
	if !ok || !h.available(c) {
		return
	}
	engagement := h.feedbackStore.UserEngagement(c.Request.Context(), limit)
	respondOK(c, fmt.Sprintf("Top %d user engagement metrics retrieved successfully", limit), engagement)
}

// Categories godoc
// @Summary      Category insights
// @Description  Counts per category tag and feedback type
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  types.SuccessResponse{data=[]types.CategoryInsight}
// @Failure      503  {object}  types.ErrorResponse
// @Router       /feedback/categories [get]
func (h *AnalyticsHandler) Categories(c *gin.Context) {
	if !h.available(c) {
		return
	}
	respondOK(c, "Category insights retrieved successfully", h.feedbackStore.CategoryInsights(c.Request.Context()))
}
