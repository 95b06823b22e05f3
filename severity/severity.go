package severity

// Tier classification derived solely from AQI. 150 is the canonical warning
// cutover and is applied uniformly wherever severity is evaluated.
type Tier int

const (
	TierNormal Tier = iota
	TierWatch
	TierWarning
	TierCritical
)

const (
	// --- AQI Thresholds ---
	watchThreshold    = 100
	warningThreshold  = 150
	criticalThreshold = 300
)

func (t Tier) String() string {
	switch t {
	case TierWatch:
		return "watch"
	case TierWarning:
		return "warning"
	case TierCritical:
		return "critical"
	}
	return "normal"
}

type Classification struct {
	Tier  Tier
	Label string
}

// Classify maps an AQI value to a severity tier. A nil AQI (unknown reading)
// is treated as non-alarming by policy, not as an error. Pure and total: the
// same input always yields the same result.
func Classify(aqi *int) Classification {
	if aqi == nil {
		return Classification{Tier: TierNormal, Label: "Unknown"}
	}
	switch {
	case *aqi > criticalThreshold:
		return Classification{Tier: TierCritical, Label: "Hazardous"}
	case *aqi > warningThreshold:
		return Classification{Tier: TierWarning, Label: "Very Unhealthy"}
	case *aqi > watchThreshold:
		return Classification{Tier: TierWatch, Label: "Moderate watch"}
	}
	return Classification{Tier: TierNormal, Label: "Good"}
}
