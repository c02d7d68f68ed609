// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	storageDriver        string
	storageHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Driver    string `json:"driver"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(storageDriver string, storageHealthChecker func() bool) *HealthController {
	return &HealthController{
		storageDriver:        storageDriver,
		storageHealthChecker: storageHealthChecker,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its storage backend.
func (h *HealthController) Check(c *gin.Context) {
	storageStatus := "disconnected"
	if h.storageHealthChecker != nil && h.storageHealthChecker() {
		storageStatus = "connected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Storage:   storageStatus,
		Driver:    h.storageDriver,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
