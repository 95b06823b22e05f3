package types

import "time"

type RecommendationStatus string

const (
	StatusPending  RecommendationStatus = "pending"
	StatusApproved RecommendationStatus = "approved"
	StatusRejected RecommendationStatus = "rejected"
)

// Recommendation is an Insight promoted into a decision-tracked lifecycle
// object. Created pending; transitions to exactly one terminal state.
type Recommendation struct {
	ID          string               `json:"id" firestore:"-"`
	Status      RecommendationStatus `json:"status" firestore:"status"`
	Type        InsightType          `json:"type" firestore:"type"`
	Title       string               `json:"title" firestore:"title"`
	Description string               `json:"description" firestore:"description"`
	Confidence  float64              `json:"confidence" firestore:"confidence"`
	Priority    Priority             `json:"priority" firestore:"priority"`
	Category    Category             `json:"category" firestore:"category"`
	Location    string               `json:"location,omitempty" firestore:"location,omitempty"`
	Source      InsightSource        `json:"source" firestore:"source"`
	CreatedAt   time.Time            `json:"createdAt" firestore:"createdAt"`
	DecidedAt   time.Time            `json:"decidedAt,omitempty" firestore:"decidedAt,omitempty"`
}
