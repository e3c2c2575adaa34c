package handlers

import (
	"github.com/envgov/feedback-api/errors"
	"github.com/envgov/feedback-api/services"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthService *services.HealthService
}

func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// Health godoc
// @Summary      Service health
// @Description  Checks the graph store
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.SuccessResponse{data=types.HealthStatus}
// @Failure      503  {object}  types.ErrorResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.healthService.CheckHealth(c.Request.Context())
	if !status.Healthy() {
		_ = c.Error(errors.ServiceUnavailable("Service is unhealthy", status.Error).WithDetails(map[string]interface{}{
			"status":        status.Status,
			"database":      status.Database,
			"database_name": status.DatabaseName,
			"error":         status.Error,
			"timestamp":     status.Timestamp,
		}))
		return
	}
	respondOK(c, "Service is healthy", status)
}
