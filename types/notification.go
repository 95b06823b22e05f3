package types

import "time"

type NotificationType string

const (
	NotificationAQI     NotificationType = "aqi"
	NotificationProject NotificationType = "project"
	NotificationSystem  NotificationType = "system"
)

type NotificationSeverity string

const (
	SeverityInfo     NotificationSeverity = "info"
	SeverityWarning  NotificationSeverity = "warning"
	SeverityCritical NotificationSeverity = "critical"
)

// Notification is an addressable alert record derived from a classified
// snapshot. Records are superseded (replaced), never mutated, when a newer
// snapshot for the same location produces a new one. Read only ever
// transitions false -> true.
type Notification struct {
	ID         string               `json:"id" firestore:"-"`
	Type       NotificationType     `json:"type" firestore:"type"`
	Severity   NotificationSeverity `json:"severity" firestore:"severity"`
	Title      string               `json:"title" firestore:"title"`
	Message    string               `json:"message" firestore:"message"`
	Location   string               `json:"location" firestore:"location"`
	ObservedAt time.Time            `json:"observedAt" firestore:"observedAt"`
	Read       bool                 `json:"read" firestore:"read"`
}
