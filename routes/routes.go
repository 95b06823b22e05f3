package routes

import (
	"github.com/gin-gonic/gin"

	"go-carewatch/handlers"
	"go-carewatch/insights"
	"go-carewatch/lifecycle"
	"go-carewatch/notify"
	"go-carewatch/poller"
	"go-carewatch/weather"
)

// Deps carries the stores and clients injected into the handlers.
type Deps struct {
	Notifications   *notify.Store
	Insights        *insights.Service
	Recommendations *lifecycle.Store
	Weather         *weather.Client
	Poller          *poller.Poller
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to CareWatch!",
		})
	})

	// api routes
	api := r.Group("/api/carewatch")
	{
		api.GET("/notifications", func(c *gin.Context) {
			handlers.GetNotifications(c, deps.Notifications)
		})
		api.POST("/notifications/read/:id", func(c *gin.Context) {
			handlers.MarkNotificationRead(c, deps.Notifications)
		})
		api.POST("/notifications/read-all", func(c *gin.Context) {
			handlers.MarkAllNotificationsRead(c, deps.Notifications)
		})
		api.GET("/notifications/unread-count", func(c *gin.Context) {
			handlers.GetUnreadCount(c, deps.Notifications)
		})

		api.POST("/insights", func(c *gin.Context) {
			handlers.GenerateInsights(c, deps.Insights)
		})
		api.POST("/staffing", func(c *gin.Context) {
			handlers.GetStaffingRecommendation(c, deps.Insights)
		})

		api.POST("/recommendations", func(c *gin.Context) {
			handlers.ProposeRecommendation(c, deps.Recommendations)
		})
		api.POST("/recommendations/:id/decision", func(c *gin.Context) {
			handlers.DecideRecommendation(c, deps.Recommendations)
		})
		api.GET("/recommendations", func(c *gin.Context) {
			handlers.ListRecommendations(c, deps.Recommendations)
		})

		api.GET("/snapshot/:location", func(c *gin.Context) {
			handlers.GetSnapshot(c, deps.Weather, deps.Poller)
		})
	}

	return r
}
