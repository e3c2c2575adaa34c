package handlers

import (
	"os"
	"testing"

	"github.com/envgov/feedback-api/logger"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
