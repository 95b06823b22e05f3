package notify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go-carewatch/severity"
	"go-carewatch/types"
)

// Store owns the Notification lifecycle: derivation from classified
// snapshots, supersession, read tracking, and the retention-filtered view.
// Physical deletion of expired records is a collaborator's responsibility.
type Store struct {
	mu            sync.Mutex
	notifications []types.Notification
	retention     time.Duration
	now           func() time.Time
}

func NewStore(retention time.Duration) *Store {
	return &Store{
		retention: retention,
		now:       time.Now,
	}
}

// Derive classifies a snapshot and, if it crosses a reporting threshold,
// replaces any live AQI notification for the same location with a fresh
// unread record. Remove-then-insert happens under one lock acquisition so a
// reader never observes the gap between the two. Returns nil when the
// snapshot is unremarkable.
func (s *Store) Derive(snapshot types.EnvironmentalSnapshot) *types.Notification {
	classification := severity.Classify(snapshot.AQI)
	if classification.Tier == severity.TierNormal {
		return nil
	}

	n := types.Notification{
		ID:         notificationID(types.NotificationAQI, snapshot.Location, s.now()),
		Type:       types.NotificationAQI,
		Severity:   mapSeverity(classification.Tier),
		Title:      fmt.Sprintf("%s air quality in %s", classification.Label, snapshot.Location),
		Message:    fmt.Sprintf("AQI reached %d in %s (%s). %s", *snapshot.AQI, snapshot.Location, classification.Label, snapshot.Description),
		Location:   snapshot.Location,
		ObservedAt: snapshot.ObservedAt,
		Read:       false,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// At most one live AQI notification per location.
	kept := s.notifications[:0]
	for _, existing := range s.notifications {
		if existing.Type == n.Type && existing.Location == n.Location {
			continue
		}
		kept = append(kept, existing)
	}
	s.notifications = append(kept, n)

	return &n
}

// Current returns a copy of live notifications, newest first excluded by the
// retention window. An empty location matches everything.
func (s *Store) Current(location string) []types.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.retention)
	out := make([]types.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if n.ObservedAt.Before(cutoff) {
			continue
		}
		if location != "" && n.Location != location {
			continue
		}
		out = append(out, n)
	}
	return out
}

// MarkRead flips one record to read. Idempotent; reports whether the id was
// found. Read never reverts to false.
func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead flips all records matching the location scope (global when
// empty). Returns the number of records newly flipped.
func (s *Store) MarkAllRead(location string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	flipped := 0
	for i := range s.notifications {
		if location != "" && s.notifications[i].Location != location {
			continue
		}
		if !s.notifications[i].Read {
			s.notifications[i].Read = true
			flipped++
		}
	}
	return flipped
}

// UnreadCount counts unread records after the retention filter, optionally
// scoped by location.
func (s *Store) UnreadCount(location string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.retention)
	count := 0
	for _, n := range s.notifications {
		if n.Read || n.ObservedAt.Before(cutoff) {
			continue
		}
		if location != "" && n.Location != location {
			continue
		}
		count++
	}
	return count
}

func mapSeverity(tier severity.Tier) types.NotificationSeverity {
	switch tier {
	case severity.TierCritical:
		return types.SeverityCritical
	case severity.TierWarning:
		return types.SeverityWarning
	}
	return types.SeverityInfo
}

func notificationID(typ types.NotificationType, location string, at time.Time) string {
	slug := strings.ToLower(strings.ReplaceAll(location, " ", "-"))
	return fmt.Sprintf("%s-%s-%d", typ, slug, at.UnixNano())
}
