package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-carewatch/types"
)

// Service generates ranked narrative insights from hospital, AQI, and
// prediction summaries. One AI attempt per request; any failure (missing
// credential, transport error, unparseable reply) falls through to the
// deterministic rule set, so callers always get something to render.
type Service struct {
	generator Generator
	now       func() time.Time
}

func NewService(generator Generator) *Service {
	return &Service{
		generator: generator,
		now:       time.Now,
	}
}

// GenerateInsights runs the full request pipeline. Never returns an error:
// upstream failures are absorbed into the fallback path.
func (s *Service) GenerateInsights(ctx context.Context, req types.InsightRequest) []types.Insight {
	if req.Empty() {
		return []types.Insight{s.systemReadyInsight()}
	}

	if s.generator != nil {
		raw, err := s.generator.Generate(ctx, buildInsightPrompt(req))
		if err != nil {
			log.Printf("Insight generation via AI failed: %v. Falling back to rules.", err)
		} else {
			parsed, perr := s.parseInsights(raw)
			if perr != nil {
				log.Printf("Discarding unparseable AI insight response: %v. Falling back to rules.", perr)
			} else {
				return sortByPriority(parsed)
			}
		}
	}

	return sortByPriority(s.fallbackInsights(req))
}

// buildInsightPrompt serializes the request into a deterministic prompt.
// Section order is fixed: hospital, AQI, predictions, then the task
// instructions demanding a JSON array reply.
func buildInsightPrompt(req types.InsightRequest) string {
	var b strings.Builder

	b.WriteString("Analyze the following hospital operations data and produce actionable insights.\n")
	if req.Timeframe != "" {
		b.WriteString(fmt.Sprintf("Timeframe: %s\n", req.Timeframe))
	}

	b.WriteString("\n--- Hospital ---\n")
	if req.HospitalSummary != "" {
		b.WriteString(req.HospitalSummary + "\n")
	}
	if req.OccupancyPct != nil {
		b.WriteString(fmt.Sprintf("Current bed occupancy: %.1f%%\n", *req.OccupancyPct))
	}

	b.WriteString("\n--- Air Quality ---\n")
	if req.AQISummary != "" {
		b.WriteString(req.AQISummary + "\n")
	}
	if req.AQI != nil {
		b.WriteString(fmt.Sprintf("Current AQI: %d\n", *req.AQI))
	}

	b.WriteString("\n--- Predictions ---\n")
	if req.PredictionSummary != "" {
		b.WriteString(req.PredictionSummary + "\n")
	}
	if len(req.Predictions) > 0 {
		b.WriteString(fmt.Sprintf("Predicted admission series: %v\n", req.Predictions))
	}

	b.WriteString("\n--- Task ---\n")
	b.WriteString("Reply with ONLY a JSON array. Each element must have \"title\" and \"description\" strings, ")
	b.WriteString("and may have \"type\" (prediction|recommendation|alert|trend), ")
	b.WriteString("\"priority\" (low|medium|high|critical), ")
	b.WriteString("\"category\" (capacity|staffing|equipment|environmental|outbreak), ")
	b.WriteString("and \"confidence\" (0.0-1.0). No prose outside the array.\n")

	return b.String()
}

type rawInsight struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Confidence  *float64 `json:"confidence"`
	Priority    string   `json:"priority"`
	Category    string   `json:"category"`
}

// parseInsights strictly parses the AI reply. The reply must be a JSON
// array (optionally wrapped in a Markdown code fence) and every element must
// carry title and description; anything less rejects the whole response so
// the caller falls back. Missing optional fields get defaults.
func (s *Service) parseInsights(raw string) ([]types.Insight, error) {
	text := stripCodeFence(raw)

	var items []rawInsight
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", types.ErrMalformedResponse)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("response array is empty: %w", types.ErrMalformedResponse)
	}

	out := make([]types.Insight, 0, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.Description) == "" {
			return nil, fmt.Errorf("element %d missing title or description: %w", i, types.ErrMalformedResponse)
		}

		confidence := 0.75
		if item.Confidence != nil {
			confidence = clamp(*item.Confidence, 0, 1)
		}

		out = append(out, types.Insight{
			ID:          uuid.NewString(),
			Type:        parseInsightType(item.Type),
			Title:       item.Title,
			Description: item.Description,
			Confidence:  confidence,
			Priority:    parsePriority(item.Priority),
			Category:    parseCategory(item.Category),
			GeneratedAt: s.now(),
			Source:      types.SourceAI,
		})
	}
	return out, nil
}

// stripCodeFence removes an optional ```json ... ``` wrapper around the
// reply body.
func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func parseInsightType(v string) types.InsightType {
	switch types.InsightType(v) {
	case types.InsightPrediction, types.InsightRecommendation, types.InsightAlert, types.InsightTrend:
		return types.InsightType(v)
	}
	return types.InsightRecommendation
}

func parsePriority(v string) types.Priority {
	switch types.Priority(v) {
	case types.PriorityLow, types.PriorityMedium, types.PriorityHigh, types.PriorityCritical:
		return types.Priority(v)
	}
	return types.PriorityMedium
}

func parseCategory(v string) types.Category {
	switch types.Category(v) {
	case types.CategoryCapacity, types.CategoryStaffing, types.CategoryEquipment,
		types.CategoryEnvironmental, types.CategoryOutbreak:
		return types.Category(v)
	}
	return types.CategoryCapacity
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sortByPriority orders descending by priority rank. Stable: ties keep the
// relative order they were produced in.
func sortByPriority(list []types.Insight) []types.Insight {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Priority.Rank() > list[j].Priority.Rank()
	})
	return list
}
