package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-carewatch/types"
)

func TestStaffingFallback(t *testing.T) {
	s := NewService(nil)

	rec, err := s.StaffingRecommendation(context.Background(), 300, 40)
	require.NoError(t, err)

	assert.Equal(t, 50, rec.RecommendedStaff)
	assert.Equal(t, 10, rec.Gap)
	assert.Equal(t, types.PriorityHigh, rec.Priority)
	assert.Equal(t, types.SourceFallback, rec.Source)
	assert.Equal(t, "Additional staff required", rec.Title)
}

func TestStaffingFallbackRoundsUp(t *testing.T) {
	s := NewService(nil)

	rec, err := s.StaffingRecommendation(context.Background(), 301, 51)
	require.NoError(t, err)

	assert.Equal(t, 51, rec.RecommendedStaff) // ceil(301/6)
	assert.Equal(t, 0, rec.Gap)
	assert.Equal(t, types.PriorityMedium, rec.Priority)
	assert.Equal(t, "Staffing matches projected need", rec.Title)
}

func TestStaffingFallbackSurplus(t *testing.T) {
	s := NewService(nil)

	rec, err := s.StaffingRecommendation(context.Background(), 60, 20)
	require.NoError(t, err)

	assert.Equal(t, 10, rec.RecommendedStaff)
	assert.Equal(t, -10, rec.Gap)
	assert.Equal(t, types.PriorityMedium, rec.Priority)
	assert.Equal(t, "Staffing above projected need", rec.Title)
}

func TestStaffingGapThreshold(t *testing.T) {
	s := NewService(nil)

	// Gap of exactly 5 stays medium; only gap > 5 escalates.
	rec, err := s.StaffingRecommendation(context.Background(), 60, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, rec.Gap)
	assert.Equal(t, types.PriorityMedium, rec.Priority)
}

func TestStaffingValidation(t *testing.T) {
	s := NewService(nil)

	_, err := s.StaffingRecommendation(context.Background(), -1, 10)
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = s.StaffingRecommendation(context.Background(), 100, -1)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestStaffingAIPath(t *testing.T) {
	gen := &fakeGenerator{reply: `{"recommendedStaff": 48, "gap": 8, "priority": "high"}`}
	s := NewService(gen)

	rec, err := s.StaffingRecommendation(context.Background(), 300, 40)
	require.NoError(t, err)

	assert.Equal(t, 48, rec.RecommendedStaff)
	assert.Equal(t, 8, rec.Gap)
	assert.Equal(t, types.PriorityHigh, rec.Priority)
	assert.Equal(t, types.SourceAI, rec.Source)
}

func TestStaffingAIMalformedFallsBack(t *testing.T) {
	gen := &fakeGenerator{reply: `{"recommendedStaff": 48}`}
	s := NewService(gen)

	rec, err := s.StaffingRecommendation(context.Background(), 300, 40)
	require.NoError(t, err)

	assert.Equal(t, types.SourceFallback, rec.Source)
	assert.Equal(t, 50, rec.RecommendedStaff)
}

func TestStaffingAIErrorFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	s := NewService(gen)

	rec, err := s.StaffingRecommendation(context.Background(), 300, 40)
	require.NoError(t, err)

	assert.Equal(t, types.SourceFallback, rec.Source)
}
