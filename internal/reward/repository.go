// File: internal/reward/repository.go
package reward

import (
	"context"
	"fmt"

	"adventure_backend/internal/config"

	"cloud.google.com/go/firestore"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// Repository defines the document store operations on rewards.
type Repository interface {
	ListActive(ctx context.Context) ([]Reward, error)
	// SeedIfEmpty inserts rewards only when the collection has no documents. It reports
	// how many were inserted.
	SeedIfEmpty(ctx context.Context, rewards []Reward) (int, error)
}

// FirestoreRepository reads rewards from a Firestore collection.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
	logger     *zap.Logger
}

// NewFirestoreRepository creates a new Firestore-backed reward repository.
func NewFirestoreRepository(client *firestore.Client, cfg *config.Config, logger *zap.Logger) Repository {
	return &FirestoreRepository{
		client:     client,
		collection: cfg.RewardsCollection,
		logger:     logger.Named("RewardRepository"),
	}
}

// ListActive returns active rewards, cheapest first. The query needs a composite index on
// (active, pointsRequired).
func (r *FirestoreRepository) ListActive(ctx context.Context) ([]Reward, error) {
	iter := r.client.Collection(r.collection).
		Where("active", "==", true).
		OrderBy("pointsRequired", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	rewards := []Reward{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list rewards: %w", err)
		}
		var rw Reward
		if err := snap.DataTo(&rw); err != nil {
			r.logger.Warn("Skipping malformed reward document", zap.String("id", snap.Ref.ID), zap.Error(err))
			continue
		}
		rw.ID = snap.Ref.ID
		rewards = append(rewards, rw.withDefaults())
	}
	return rewards, nil
}

// SeedIfEmpty runs in a transaction so two concurrent seeders cannot both insert.
// Document ids are slugs of the titles.
func (r *FirestoreRepository) SeedIfEmpty(ctx context.Context, rewards []Reward) (int, error) {
	col := r.client.Collection(r.collection)
	inserted := 0
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		inserted = 0
		existing, err := tx.Documents(col.Limit(1)).GetAll()
		if err != nil {
			return fmt.Errorf("failed to check rewards collection: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}
		for _, rw := range rewards {
			if err := tx.Create(col.Doc(slug.Make(rw.Title)), rw.withDefaults()); err != nil {
				return fmt.Errorf("failed to create reward %q: %w", rw.Title, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
