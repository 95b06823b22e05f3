package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"go-carewatch/types"
)

// Patients one staff member can cover per shift; drives the closed-form
// staffing fallback.
const patientsPerStaff = 6

// gapAlertThreshold is the shortfall above which the staffing priority
// escalates to high.
const gapAlertThreshold = 5

// StaffingRecommendation follows the same two-path pattern as insight
// generation: one AI attempt with strict parsing, then a closed-form ratio
// fallback. Only malformed caller input is an error.
func (s *Service) StaffingRecommendation(ctx context.Context, predictedLoad float64, currentStaff int) (types.StaffingRecommendation, error) {
	if predictedLoad < 0 || currentStaff < 0 {
		return types.StaffingRecommendation{}, fmt.Errorf("predicted load and current staff must be non-negative: %w", types.ErrValidation)
	}

	if s.generator != nil {
		raw, err := s.generator.Generate(ctx, buildStaffingPrompt(predictedLoad, currentStaff))
		if err != nil {
			log.Printf("Staffing recommendation via AI failed: %v. Falling back to ratio.", err)
		} else {
			rec, perr := parseStaffing(raw)
			if perr != nil {
				log.Printf("Discarding unparseable AI staffing response: %v. Falling back to ratio.", perr)
			} else {
				return rec, nil
			}
		}
	}

	return fallbackStaffing(predictedLoad, currentStaff), nil
}

func buildStaffingPrompt(predictedLoad float64, currentStaff int) string {
	var b strings.Builder
	b.WriteString("Recommend staffing for a hospital ward.\n")
	b.WriteString(fmt.Sprintf("Predicted patient load: %.0f\n", predictedLoad))
	b.WriteString(fmt.Sprintf("Current staff on roster: %d\n", currentStaff))
	b.WriteString("\nReply with ONLY a JSON object with integer \"recommendedStaff\", integer \"gap\", ")
	b.WriteString("and \"priority\" (high|medium). No prose.\n")
	return b.String()
}

type rawStaffing struct {
	RecommendedStaff *int   `json:"recommendedStaff"`
	Gap              *int   `json:"gap"`
	Priority         string `json:"priority"`
}

func parseStaffing(raw string) (types.StaffingRecommendation, error) {
	var rec types.StaffingRecommendation

	var parsed rawStaffing
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return rec, fmt.Errorf("response is not a JSON object: %w", types.ErrMalformedResponse)
	}
	if parsed.RecommendedStaff == nil || parsed.Gap == nil {
		return rec, fmt.Errorf("response missing recommendedStaff or gap: %w", types.ErrMalformedResponse)
	}

	priority := types.PriorityMedium
	if parsed.Priority == string(types.PriorityHigh) {
		priority = types.PriorityHigh
	}

	rec = types.StaffingRecommendation{
		RecommendedStaff: *parsed.RecommendedStaff,
		Gap:              *parsed.Gap,
		Priority:         priority,
		Source:           types.SourceAI,
	}
	rec.Title, rec.Description = staffingNarrative(rec.RecommendedStaff, rec.Gap)
	return rec, nil
}

// fallbackStaffing is the closed-form path: ceil(load / patientsPerStaff)
// against the current roster.
func fallbackStaffing(predictedLoad float64, currentStaff int) types.StaffingRecommendation {
	recommended := int(math.Ceil(predictedLoad / patientsPerStaff))
	gap := recommended - currentStaff

	priority := types.PriorityMedium
	if gap > gapAlertThreshold {
		priority = types.PriorityHigh
	}

	rec := types.StaffingRecommendation{
		RecommendedStaff: recommended,
		Gap:              gap,
		Priority:         priority,
		Source:           types.SourceFallback,
	}
	rec.Title, rec.Description = staffingNarrative(recommended, gap)
	return rec
}

func staffingNarrative(recommended, gap int) (string, string) {
	switch {
	case gap > 0:
		return "Additional staff required",
			fmt.Sprintf("Projected load needs %d staff; roster is short by %d. Arrange additional cover.", recommended, gap)
	case gap < 0:
		return "Staffing above projected need",
			fmt.Sprintf("Projected load needs %d staff; roster carries a surplus of %d.", recommended, -gap)
	}
	return "Staffing matches projected need",
		fmt.Sprintf("Projected load needs %d staff; the current roster covers it exactly.", recommended)
}
