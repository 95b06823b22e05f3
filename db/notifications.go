package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"

	"go-carewatch/types"
)

const notificationsCollection = "notifications"

// SaveNotifications mirrors derived notifications into the 'notifications'
// collection using BulkWriter for efficient non-transactional writes. The
// in-process notify store stays the source of supersession truth; this is a
// best-effort mirror for dashboard subscribers.
func SaveNotifications(client *firestore.Client, notifications []types.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	ctx := context.Background()
	bw := client.BulkWriter(ctx)
	collectionRef := client.Collection(notificationsCollection)

	savedCount := 0
	for i := range notifications {
		n := notifications[i]

		if n.ID == "" {
			log.Printf("Warning: Skipping notification with empty ID: %+v", n)
			continue
		}
		docRef := collectionRef.Doc(n.ID)

		if _, err := bw.Set(docRef, n); err != nil {
			log.Printf("Error enqueueing notification %s for save: %v", n.ID, err)
		} else {
			savedCount++
		}
	}

	if savedCount == 0 {
		return nil
	}

	// Flush sends any remaining writes and waits for them to complete.
	bw.Flush()

	log.Printf("Mirrored %d notifications to Firestore.", savedCount)
	return nil
}
