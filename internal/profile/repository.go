// File: internal/profile/repository.go
package profile

import (
	"context"
	"errors"
	"fmt"

	"adventure_backend/internal/common"
	"adventure_backend/internal/config"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Repository defines the document store operations on user profiles.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	FindByUID(ctx context.Context, uid string) (*Profile, error)
	UpdateBio(ctx context.Context, uid, bio string) error
	ListPage(ctx context.Context, afterUID string, limit int) (page []Profile, nextCursor string, err error)
}

// FirestoreRepository stores profiles in a Firestore collection keyed by uid.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
	logger     *zap.Logger
}

// NewFirestoreRepository creates a new Firestore-backed profile repository.
func NewFirestoreRepository(client *firestore.Client, cfg *config.Config, logger *zap.Logger) Repository {
	return &FirestoreRepository{
		client:     client,
		collection: cfg.UsersCollection,
		logger:     logger.Named("ProfileRepository"),
	}
}

func (r *FirestoreRepository) doc(uid string) *firestore.DocumentRef {
	return r.client.Collection(r.collection).Doc(uid)
}

// Create writes the full profile document. joinedAt is assigned by the server; the
// commit time is copied back onto p.
func (r *FirestoreRepository) Create(ctx context.Context, p *Profile) error {
	if p.UID == "" {
		return fmt.Errorf("profile uid must not be empty")
	}
	wr, err := r.doc(p.UID).Set(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to write profile %s: %w", p.UID, err)
	}
	p.JoinedAt = wr.UpdateTime
	return nil
}

func (r *FirestoreRepository) FindByUID(ctx context.Context, uid string) (*Profile, error) {
	snap, err := r.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrNotFound.WithDetails("Profile not found.")
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", uid, err)
	}

	var p Profile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", uid, err)
	}
	if p.UID == "" {
		p.UID = snap.Ref.ID
	}
	return &p, nil
}

func (r *FirestoreRepository) UpdateBio(ctx context.Context, uid, bio string) error {
	_, err := r.doc(uid).Update(ctx, []firestore.Update{{Path: "bio", Value: bio}})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return common.ErrNotFound.WithDetails("Profile not found.")
		}
		return fmt.Errorf("failed to update bio for %s: %w", uid, err)
	}
	return nil
}

// ListPage returns up to limit profiles ordered by document id, starting after afterUID.
// nextCursor is the last document id scanned, or empty once the collection is exhausted.
func (r *FirestoreRepository) ListPage(ctx context.Context, afterUID string, limit int) ([]Profile, string, error) {
	q := r.client.Collection(r.collection).OrderBy(firestore.DocumentID, firestore.Asc).Limit(limit)
	if afterUID != "" {
		q = q.StartAfter(afterUID)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var (
		out     []Profile
		scanned int
		lastID  string
	)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to list profiles: %w", err)
		}
		scanned++
		lastID = snap.Ref.ID

		var p Profile
		if err := snap.DataTo(&p); err != nil {
			r.logger.Warn("Skipping undecodable profile document", zap.String("docID", snap.Ref.ID), zap.Error(err))
			continue
		}
		if p.UID == "" {
			p.UID = snap.Ref.ID
		}
		out = append(out, p)
	}

	if scanned < limit {
		lastID = ""
	}
	return out, lastID, nil
}
