package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-carewatch/types"
)

func intPtr(v int) *int { return &v }

func snapshotWithAQI(location string, aqi int, observedAt time.Time) types.EnvironmentalSnapshot {
	return types.EnvironmentalSnapshot{
		Location:    location,
		AQI:         intPtr(aqi),
		Description: "Dominant pollutant: pm25",
		ObservedAt:  observedAt,
	}
}

func newTestStore(now time.Time) *Store {
	s := NewStore(7 * 24 * time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestDeriveNormalEmitsNothing(t *testing.T) {
	s := newTestStore(time.Now())

	assert.Nil(t, s.Derive(snapshotWithAQI("Delhi", 80, time.Now())))
	assert.Nil(t, s.Derive(types.EnvironmentalSnapshot{Location: "Delhi", ObservedAt: time.Now()}))
	assert.Empty(t, s.Current(""))
}

func TestDeriveSeverityMapping(t *testing.T) {
	now := time.Now()
	tests := []struct {
		aqi      int
		severity types.NotificationSeverity
	}{
		{120, types.SeverityInfo},
		{200, types.SeverityWarning},
		{350, types.SeverityCritical},
	}

	for _, tt := range tests {
		s := newTestStore(now)
		n := s.Derive(snapshotWithAQI("Delhi", tt.aqi, now))
		require.NotNil(t, n)
		assert.Equal(t, tt.severity, n.Severity)
		assert.Equal(t, types.NotificationAQI, n.Type)
		assert.False(t, n.Read)
		assert.Contains(t, n.Message, "Delhi")
	}
}

func TestDeriveSupersession(t *testing.T) {
	now := time.Now()
	s := newTestStore(now)

	// Strictly increasing AQI for the same location must never leave more
	// than one live aqi notification.
	s.Derive(snapshotWithAQI("Delhi", 160, now))
	s.Derive(snapshotWithAQI("Delhi", 240, now.Add(time.Minute)))
	s.Derive(snapshotWithAQI("Delhi", 320, now.Add(2*time.Minute)))

	current := s.Current("Delhi")
	require.Len(t, current, 1)
	assert.Equal(t, types.SeverityCritical, current[0].Severity)

	// A different location is its own channel.
	s.Derive(snapshotWithAQI("Mumbai", 180, now))
	assert.Len(t, s.Current(""), 2)
}

func TestMarkRead(t *testing.T) {
	now := time.Now()
	s := newTestStore(now)

	n := s.Derive(snapshotWithAQI("Delhi", 200, now))
	require.NotNil(t, n)

	assert.True(t, s.MarkRead(n.ID))
	assert.True(t, s.MarkRead(n.ID)) // idempotent
	assert.False(t, s.MarkRead("missing"))
	assert.Equal(t, 0, s.UnreadCount(""))
}

func TestMarkAllReadScoped(t *testing.T) {
	now := time.Now()
	s := newTestStore(now)

	s.Derive(snapshotWithAQI("Delhi", 200, now))
	s.Derive(snapshotWithAQI("Mumbai", 180, now))

	assert.Equal(t, 1, s.MarkAllRead("Delhi"))
	assert.Equal(t, 0, s.UnreadCount("Delhi"))
	assert.Equal(t, 1, s.UnreadCount(""))

	assert.Equal(t, 1, s.MarkAllRead(""))
	assert.Equal(t, 0, s.UnreadCount(""))
	assert.Equal(t, 0, s.MarkAllRead("")) // no-op when everything is read
}

func TestRetentionFilter(t *testing.T) {
	now := time.Now()
	s := newTestStore(now)

	s.Derive(snapshotWithAQI("Delhi", 200, now.Add(-8*24*time.Hour)))
	s.Derive(snapshotWithAQI("Mumbai", 180, now))

	current := s.Current("")
	require.Len(t, current, 1)
	assert.Equal(t, "Mumbai", current[0].Location)

	// Expired records drop out of the unread count but are not deleted.
	assert.Equal(t, 1, s.UnreadCount(""))
}

func TestCurrentReturnsCopy(t *testing.T) {
	now := time.Now()
	s := newTestStore(now)
	s.Derive(snapshotWithAQI("Delhi", 200, now))

	view := s.Current("")
	view[0].Read = true

	assert.Equal(t, 1, s.UnreadCount(""))
}
