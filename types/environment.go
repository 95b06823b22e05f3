package types

import "time"

// EnvironmentalSnapshot is one immutable point-in-time weather/air-quality
// reading for a location. A new poll produces a new snapshot; prior
// snapshots are never mutated.
type EnvironmentalSnapshot struct {
	Location    string    `json:"location" firestore:"location"`
	AQI         *int      `json:"aqi,omitempty" firestore:"aqi,omitempty"` // nil means unknown
	Temperature float64   `json:"temperature" firestore:"temperature"`
	Humidity    int       `json:"humidity" firestore:"humidity"`
	WindSpeed   float64   `json:"windSpeed" firestore:"windSpeed"`
	Description string    `json:"description" firestore:"description"`
	ObservedAt  time.Time `json:"observedAt" firestore:"observedAt"`
	Fallback    bool      `json:"fallback,omitempty" firestore:"fallback,omitempty"` // true when served from offline defaults
}
