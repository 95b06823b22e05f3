package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-carewatch/types"
)

const recommendationsCollection = "recommendations"

// RecommendationStore persists recommendation lifecycle state to Firestore.
// It satisfies lifecycle.Persistence.
type RecommendationStore struct {
	client *firestore.Client
}

func NewRecommendationStore(client *firestore.Client) *RecommendationStore {
	return &RecommendationStore{client: client}
}

// SavePending writes a freshly proposed recommendation keyed by its id.
func (s *RecommendationStore) SavePending(ctx context.Context, rec types.Recommendation) error {
	docRef := s.client.Collection(recommendationsCollection).Doc(rec.ID)
	if _, err := docRef.Set(ctx, rec); err != nil {
		return fmt.Errorf("failed to save recommendation %s: %w", rec.ID, err)
	}
	return nil
}

// CommitDecision durably records a terminal state transition. The read and
// write run in one transaction so a duplicate or conflicting decision
// arriving concurrently can never overwrite a committed outcome: a repeat of
// the same outcome is a no-op, a different outcome fails with
// ErrAlreadyDecided.
func (s *RecommendationStore) CommitDecision(ctx context.Context, rec types.Recommendation) error {
	docRef := s.client.Collection(recommendationsCollection).Doc(rec.ID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("recommendation %s: %w", rec.ID, types.ErrNotFound)
			}
			return fmt.Errorf("error getting recommendation %s: %w", rec.ID, err)
		}

		var stored types.Recommendation
		if err := doc.DataTo(&stored); err != nil {
			return fmt.Errorf("error converting recommendation %s: %w", rec.ID, err)
		}

		if stored.Status != types.StatusPending {
			if stored.Status == rec.Status {
				// Already committed with the same outcome; nothing to write.
				return nil
			}
			return fmt.Errorf("recommendation %s is already %s: %w", rec.ID, stored.Status, types.ErrAlreadyDecided)
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "status", Value: rec.Status},
			{Path: "decidedAt", Value: rec.DecidedAt},
		})
	})

	if err != nil {
		log.Printf("Decision transaction failed for %s: %v", rec.ID, err)
		return err
	}
	return nil
}

// GetRecommendation retrieves a single recommendation document by its id.
func (s *RecommendationStore) GetRecommendation(ctx context.Context, id string) (types.Recommendation, error) {
	var rec types.Recommendation

	docSnap, err := s.client.Collection(recommendationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return rec, fmt.Errorf("recommendation %s: %w", id, types.ErrNotFound)
		}
		return rec, fmt.Errorf("error getting recommendation %s: %w", id, err)
	}

	if err := docSnap.DataTo(&rec); err != nil {
		return rec, fmt.Errorf("error converting document %s: %w", id, err)
	}
	rec.ID = docSnap.Ref.ID

	return rec, nil
}

// ListRecommendations retrieves recommendations, optionally filtered by
// status.
func (s *RecommendationStore) ListRecommendations(ctx context.Context, statusFilter types.RecommendationStatus) ([]types.Recommendation, error) {
	query := s.client.Collection(recommendationsCollection).Query
	if statusFilter != "" {
		query = query.Where("status", "==", string(statusFilter))
	}

	var out []types.Recommendation
	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating recommendations collection: %w", err)
		}

		var rec types.Recommendation
		if err := doc.DataTo(&rec); err != nil {
			log.Printf("Warning: Error converting document %s to Recommendation: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		rec.ID = doc.Ref.ID
		out = append(out, rec)
	}
	return out, nil
}
