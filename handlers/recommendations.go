package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-carewatch/lifecycle"
	"go-carewatch/types"
)

// ProposeRecommendation promotes a generated insight into a pending,
// decision-tracked recommendation.
func ProposeRecommendation(c *gin.Context, store *lifecycle.Store) {
	var req struct {
		Insight  types.Insight `json:"insight"`
		Location string        `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := store.Propose(c.Request.Context(), req.Insight, req.Location)
	if err != nil {
		if errors.Is(err, types.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// DecideRecommendation applies an approve/reject decision. Lifecycle misuse
// is surfaced verbatim so the dashboard can show an actionable message.
func DecideRecommendation(c *gin.Context, store *lifecycle.Store) {
	var req struct {
		Outcome types.RecommendationStatus `json:"outcome"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := store.Decide(c.Request.Context(), c.Param("id"), req.Outcome)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, types.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, types.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListRecommendations returns tracked recommendations filtered by optional
// status and location query parameters.
func ListRecommendations(c *gin.Context, store *lifecycle.Store) {
	filter := lifecycle.Filter{
		Status:   types.RecommendationStatus(c.Query("status")),
		Location: c.Query("location"),
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": store.List(filter)})
}
