package handlers

import (
	"time"

	"github.com/envgov/feedback-api/errors"
	"github.com/envgov/feedback-api/internal/store"
	"github.com/envgov/feedback-api/logger"
	"github.com/envgov/feedback-api/middleware"
	"github.com/envgov/feedback-api/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedbackHandler handles feedback submission endpoints.
type FeedbackHandler struct {
	feedbackStore store.FeedbackStore
	log           *zap.SugaredLogger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackStore store.FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackStore: feedbackStore,
		log:           logger.GetLogger().Named("feedback"),
	}
}

// SubmitFeedback godoc
// @Summary      Submit feedback
// @Description  Store one judgment about a chatbot answer
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      types.FeedbackCreate  true  "Feedback payload"
// @Success      200   {object}  types.SuccessResponse{data=types.FeedbackStored}
// @Failure      400   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Failure      503   {object}  types.ErrorResponse
// @Router       /feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	h.log.Infow("Feedback request received",
		"request_id", c.GetString(middleware.RequestIDKey),
		"client_ip", c.ClientIP(),
		"user_agent", c.Request.UserAgent(),
		"content_type", c.ContentType())

	var req types.FeedbackCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	fb, fieldErrs := req.Validate()
	if len(fieldErrs) > 0 {
		h.log.Warnw("Feedback validation failed", "fields", fieldErrs)
		_ = c.Error(errors.ValidationFields("Validation error", fieldErrs))
		return
	}
	h.log.Debugw("Feedback validated",
		"user_query", logger.Truncate(fb.UserQuery, 100),
		"bot_response", logger.Truncate(fb.BotResponse, 100),
		"feedback_type", fb.FeedbackType,
		"rating_stars", fb.RatingStars)

	if h.feedbackStore == nil {
		_ = c.Error(errors.ServiceUnavailable("Storage service not available", ""))
		return
	}

	if err := h.feedbackStore.StoreFeedback(c.Request.Context(), fb); err != nil {
		_ = c.Error(errors.StorageFailure("Failed to store feedback", err))
		return
	}

	respondOK(c, "Feedback stored successfully", types.FeedbackStored{
		Database:     h.feedbackStore.Database(),
		StoredAt:     time.Now().UTC().Format(time.RFC3339),
		FeedbackType: fb.FeedbackType,
		RatingStars:  fb.RatingStars,
	})
}
