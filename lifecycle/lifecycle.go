package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-carewatch/types"
)

// Persistence is the durable system of record for recommendations. The
// Firestore implementation lives in the db package; tests substitute a fake.
type Persistence interface {
	SavePending(ctx context.Context, rec types.Recommendation) error
	CommitDecision(ctx context.Context, rec types.Recommendation) error
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Status   types.RecommendationStatus
	Location string
}

// Store tracks recommendation state transitions. It is the staging layer in
// front of the external document store: each decision persists exactly once,
// and duplicate decide calls converge without a second write. Live
// subscription semantics belong to the document store, not re-implemented
// here.
type Store struct {
	mu          sync.Mutex
	records     map[string]*types.Recommendation
	order       []string // insertion order for stable listings
	persistence Persistence
	now         func() time.Time
}

func NewStore(persistence Persistence) *Store {
	return &Store{
		records:     make(map[string]*types.Recommendation),
		persistence: persistence,
		now:         time.Now,
	}
}

// Propose promotes an insight into a pending recommendation with a stable,
// globally unique id.
func (s *Store) Propose(ctx context.Context, insight types.Insight, location string) (types.Recommendation, error) {
	if insight.Title == "" || insight.Description == "" {
		return types.Recommendation{}, fmt.Errorf("insight needs title and description: %w", types.ErrValidation)
	}

	rec := types.Recommendation{
		ID:          uuid.NewString(),
		Status:      types.StatusPending,
		Type:        insight.Type,
		Title:       insight.Title,
		Description: insight.Description,
		Confidence:  insight.Confidence,
		Priority:    insight.Priority,
		Category:    insight.Category,
		Location:    location,
		Source:      insight.Source,
		CreatedAt:   s.now(),
	}

	if err := s.persistence.SavePending(ctx, rec); err != nil {
		return types.Recommendation{}, fmt.Errorf("failed to persist pending recommendation: %w", err)
	}

	s.mu.Lock()
	stored := rec
	s.records[rec.ID] = &stored
	s.order = append(s.order, rec.ID)
	s.mu.Unlock()

	return rec, nil
}

// Decide transitions a pending recommendation to exactly one terminal
// state. Repeating the same decision is an idempotent no-op returning the
// committed record; a conflicting decision after commit fails with
// ErrAlreadyDecided. The terminal state is claimed under the lock before the
// persistence write so concurrent duplicates converge on one write.
func (s *Store) Decide(ctx context.Context, id string, outcome types.RecommendationStatus) (types.Recommendation, error) {
	if outcome != types.StatusApproved && outcome != types.StatusRejected {
		return types.Recommendation{}, fmt.Errorf("outcome must be approved or rejected: %w", types.ErrValidation)
	}

	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return types.Recommendation{}, fmt.Errorf("recommendation %s: %w", id, types.ErrNotFound)
	}

	if rec.Status != types.StatusPending {
		committed := *rec
		s.mu.Unlock()
		if committed.Status == outcome {
			return committed, nil
		}
		return types.Recommendation{}, fmt.Errorf("recommendation %s is already %s: %w", id, committed.Status, types.ErrAlreadyDecided)
	}

	rec.Status = outcome
	rec.DecidedAt = s.now()
	committed := *rec
	s.mu.Unlock()

	if err := s.persistence.CommitDecision(ctx, committed); err != nil {
		// Stage the record back to pending so a retry can persist it.
		s.mu.Lock()
		rec.Status = types.StatusPending
		rec.DecidedAt = time.Time{}
		s.mu.Unlock()
		return types.Recommendation{}, fmt.Errorf("failed to persist decision for %s: %w", id, err)
	}

	return committed, nil
}

// List returns a copy of the tracked recommendations, optionally filtered by
// status and location. Read-only; no side effects.
func (s *Store) List(filter Filter) []types.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Recommendation, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Location != "" && rec.Location != filter.Location {
			continue
		}
		out = append(out, *rec)
	}
	return out
}

// Get returns one recommendation by id.
func (s *Store) Get(id string) (types.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return types.Recommendation{}, fmt.Errorf("recommendation %s: %w", id, types.ErrNotFound)
	}
	return *rec, nil
}
