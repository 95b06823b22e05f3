package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-carewatch/insights"
	"go-carewatch/types"
)

// GenerateInsights runs the insight pipeline for the posted request.
// Upstream failures never surface here; the service always hands back a
// renderable list.
func GenerateInsights(c *gin.Context, svc *insights.Service) {
	var req types.InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list := svc.GenerateInsights(c.Request.Context(), req)
	c.JSON(http.StatusOK, gin.H{"insights": list})
}

// GetStaffingRecommendation runs the staffing variant.
func GetStaffingRecommendation(c *gin.Context, svc *insights.Service) {
	var req struct {
		PredictedLoad float64 `json:"predictedLoad"`
		CurrentStaff  int     `json:"currentStaff"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := svc.StaffingRecommendation(c.Request.Context(), req.PredictedLoad, req.CurrentStaff)
	if err != nil {
		if errors.Is(err, types.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
