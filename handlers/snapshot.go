package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-carewatch/poller"
	"go-carewatch/weather"
)

// GetSnapshot serves an on-demand environmental reading for a location.
// Provider failures are absorbed into the deterministic offline snapshot so
// the dashboard always has something to render.
func GetSnapshot(c *gin.Context, client *weather.Client, p *poller.Poller) {
	location := c.Param("location")

	snapshot, err := client.Fetch(c.Request.Context(), location)
	if err != nil {
		log.Printf("On-demand fetch failed for %s: %v. Serving fallback.", location, err)
		// Prefer the last polled reading over the static defaults.
		if cached, ok := p.Latest(location); ok {
			c.JSON(http.StatusOK, cached)
			return
		}
		snapshot = weather.FallbackSnapshot(location, time.Now())
	}
	c.JSON(http.StatusOK, snapshot)
}
