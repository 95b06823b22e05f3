package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-carewatch/notify"
)

// GetNotifications returns the current (retention-filtered) notification
// view, optionally scoped by a location query parameter.
func GetNotifications(c *gin.Context, store *notify.Store) {
	location := c.Query("location")
	c.JSON(http.StatusOK, gin.H{
		"notifications": store.Current(location),
		"unreadCount":   store.UnreadCount(location),
	})
}

// MarkNotificationRead acknowledges a single notification.
func MarkNotificationRead(c *gin.Context, store *notify.Store) {
	id := c.Param("id")
	if !store.MarkRead(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "read": true})
}

// MarkAllNotificationsRead acknowledges every unread notification, globally
// or scoped by the location query parameter.
func MarkAllNotificationsRead(c *gin.Context, store *notify.Store) {
	location := c.Query("location")
	flipped := store.MarkAllRead(location)
	c.JSON(http.StatusOK, gin.H{"marked": flipped})
}

// GetUnreadCount returns the unread notification count after the retention
// filter.
func GetUnreadCount(c *gin.Context, store *notify.Store) {
	location := c.Query("location")
	c.JSON(http.StatusOK, gin.H{"unreadCount": store.UnreadCount(location)})
}
