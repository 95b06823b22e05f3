package types

import "time"

type InsightType string

const (
	InsightPrediction     InsightType = "prediction"
	InsightRecommendation InsightType = "recommendation"
	InsightAlert          InsightType = "alert"
	InsightTrend          InsightType = "trend"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank orders priorities for sorting. Unknown priorities rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type Category string

const (
	CategoryCapacity      Category = "capacity"
	CategoryStaffing      Category = "staffing"
	CategoryEquipment     Category = "equipment"
	CategoryEnvironmental Category = "environmental"
	CategoryOutbreak      Category = "outbreak"
)

type InsightSource string

const (
	SourceAI       InsightSource = "ai"
	SourceFallback InsightSource = "fallback"
)

// InsightRequest is the caller-assembled, read-only input to insight
// generation. The free-text summaries feed the AI prompt; the structured
// fields feed the deterministic fallback rules.
type InsightRequest struct {
	HospitalSummary   string    `json:"hospitalSummary"`
	AQISummary        string    `json:"aqiSummary"`
	PredictionSummary string    `json:"predictionSummary"`
	Timeframe         string    `json:"timeframe"`
	OccupancyPct      *float64  `json:"occupancyPct,omitempty"`
	AQI               *int      `json:"aqi,omitempty"`
	Predictions       []float64 `json:"predictions,omitempty"`
}

// Empty reports whether the request carries no usable input at all.
func (r InsightRequest) Empty() bool {
	return r.HospitalSummary == "" && r.AQISummary == "" && r.PredictionSummary == "" &&
		r.OccupancyPct == nil && r.AQI == nil && len(r.Predictions) == 0
}

// Insight is a generated analytical statement. Immutable once produced; the
// ranked list is regenerated per request.
type Insight struct {
	ID          string        `json:"id" firestore:"-"`
	Type        InsightType   `json:"type" firestore:"type"`
	Title       string        `json:"title" firestore:"title"`
	Description string        `json:"description" firestore:"description"`
	Confidence  float64       `json:"confidence" firestore:"confidence"`
	Priority    Priority      `json:"priority" firestore:"priority"`
	Category    Category      `json:"category" firestore:"category"`
	GeneratedAt time.Time     `json:"generatedAt" firestore:"generatedAt"`
	Source      InsightSource `json:"source" firestore:"source"`
}

// StaffingRecommendation is the result of the staffing variant of insight
// generation.
type StaffingRecommendation struct {
	RecommendedStaff int           `json:"recommendedStaff"`
	Gap              int           `json:"gap"`
	Priority         Priority      `json:"priority"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Source           InsightSource `json:"source"`
}
