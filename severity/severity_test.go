package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		aqi   *int
		tier  Tier
		label string
	}{
		{"nil aqi is normal", nil, TierNormal, "Unknown"},
		{"zero", intPtr(0), TierNormal, "Good"},
		{"good upper bound", intPtr(100), TierNormal, "Good"},
		{"watch lower bound", intPtr(101), TierWatch, "Moderate watch"},
		{"watch upper bound", intPtr(150), TierWatch, "Moderate watch"},
		{"warning lower bound", intPtr(151), TierWarning, "Very Unhealthy"},
		{"warning upper bound", intPtr(300), TierWarning, "Very Unhealthy"},
		{"critical lower bound", intPtr(301), TierCritical, "Hazardous"},
		{"extreme", intPtr(999), TierCritical, "Hazardous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.aqi)
			assert.Equal(t, tt.tier, got.Tier)
			assert.Equal(t, tt.label, got.Label)
		})
	}
}

func TestClassifyBoundaryDiffers(t *testing.T) {
	// 300 and 301 must land on opposite sides of the critical cutover.
	assert.NotEqual(t, Classify(intPtr(300)).Tier, Classify(intPtr(301)).Tier)
}

func TestClassifyDeterministic(t *testing.T) {
	a := Classify(intPtr(250))
	b := Classify(intPtr(250))
	assert.Equal(t, a, b)
}
