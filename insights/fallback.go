package insights

import (
	"fmt"

	"github.com/google/uuid"

	"go-carewatch/types"
)

const (
	// --- Fallback rule thresholds ---

	// AQI bands
	aqiCriticalBand = 200
	aqiHighBand     = 150
	aqiMediumBand   = 100

	// Occupancy bands (percent)
	occupancyCritical = 90.0
	occupancyHigh     = 75.0

	// Prediction spike detection
	minPredictionPoints = 3
	spikeDeviationPct   = 20.0
)

// fallbackInsights evaluates the deterministic rule set. Each rule looks at
// one input independently; results are concatenated in rule order and sorted
// by the caller.
func (s *Service) fallbackInsights(req types.InsightRequest) []types.Insight {
	var out []types.Insight

	if req.AQI != nil {
		switch aqi := *req.AQI; {
		case aqi >= aqiCriticalBand:
			out = append(out, s.fallbackInsight(
				types.InsightAlert, types.PriorityCritical, types.CategoryEnvironmental, 0.9,
				"Severe air quality emergency",
				fmt.Sprintf("AQI at %d. Expect a 40-50%% rise in respiratory admissions within 24-48 hours. Activate surge protocols and stock respiratory supplies.", aqi),
			))
		case aqi >= aqiHighBand:
			out = append(out, s.fallbackInsight(
				types.InsightRecommendation, types.PriorityHigh, types.CategoryEnvironmental, 0.85,
				"Air quality deteriorating",
				fmt.Sprintf("AQI at %d. Expect a 25-30%% rise in respiratory admissions. Increase respiratory ward readiness.", aqi),
			))
		case aqi >= aqiMediumBand:
			out = append(out, s.fallbackInsight(
				types.InsightRecommendation, types.PriorityMedium, types.CategoryEnvironmental, 0.8,
				"Air quality watch",
				fmt.Sprintf("AQI at %d. Expect a 10-15%% rise in respiratory admissions. Monitor sensitive patient groups.", aqi),
			))
		}
	}

	if req.OccupancyPct != nil {
		switch occupancy := *req.OccupancyPct; {
		case occupancy >= occupancyCritical:
			out = append(out, s.fallbackInsight(
				types.InsightAlert, types.PriorityCritical, types.CategoryCapacity, 0.9,
				"Bed capacity critical",
				fmt.Sprintf("Occupancy at %.1f%%. Initiate discharge review and prepare overflow areas.", occupancy),
			))
		case occupancy >= occupancyHigh:
			out = append(out, s.fallbackInsight(
				types.InsightRecommendation, types.PriorityHigh, types.CategoryCapacity, 0.85,
				"Bed capacity tightening",
				fmt.Sprintf("Occupancy at %.1f%%. Review elective admissions and discharge candidates.", occupancy),
			))
		}
	}

	if deviation, ok := predictionSpike(req.Predictions); ok {
		out = append(out, s.fallbackInsight(
			types.InsightAlert, types.PriorityHigh, types.CategoryOutbreak, 0.8,
			"Admission spike predicted",
			fmt.Sprintf("Latest predicted load is %.0f%% above the recent average. Investigate a possible outbreak driver.", deviation),
		))
	}

	if len(out) == 0 {
		out = append(out, s.systemReadyInsight())
	}
	return out
}

// predictionSpike reports the percent deviation of the latest point over the
// mean of all points, when at least minPredictionPoints are supplied and the
// deviation exceeds the spike threshold.
func predictionSpike(predictions []float64) (float64, bool) {
	if len(predictions) < minPredictionPoints {
		return 0, false
	}

	sum := 0.0
	for _, p := range predictions {
		sum += p
	}
	mean := sum / float64(len(predictions))
	if mean <= 0 {
		return 0, false
	}

	latest := predictions[len(predictions)-1]
	deviation := (latest - mean) / mean * 100
	if deviation <= spikeDeviationPct {
		return 0, false
	}
	return deviation, true
}

func (s *Service) fallbackInsight(t types.InsightType, p types.Priority, c types.Category, confidence float64, title, description string) types.Insight {
	return types.Insight{
		ID:          uuid.NewString(),
		Type:        t,
		Title:       title,
		Description: description,
		Confidence:  confidence,
		Priority:    p,
		Category:    c,
		GeneratedAt: s.now(),
		Source:      types.SourceFallback,
	}
}

func (s *Service) systemReadyInsight() types.Insight {
	return types.Insight{
		ID:          uuid.NewString(),
		Type:        types.InsightRecommendation,
		Title:       "System ready",
		Description: "All monitored indicators are within normal ranges. No immediate action required.",
		Confidence:  1.0,
		Priority:    types.PriorityLow,
		Category:    types.CategoryCapacity,
		GeneratedAt: s.now(),
		Source:      types.SourceFallback,
	}
}
