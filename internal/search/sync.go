// File: internal/search/sync.go
package search

import (
	"context"
	"fmt"

	"adventure_backend/internal/profile"
	"adventure_backend/internal/shared"

	"go.uber.org/zap"
)

// ProfileLister pages through stored profiles ordered by uid.
type ProfileLister interface {
	ListPage(ctx context.Context, afterUID string, limit int) ([]profile.Profile, string, error)
}

// Syncer copies every stored profile into the search index.
type Syncer struct {
	profiles ProfileLister
	indexer  *Indexer
	logger   *zap.Logger
}

// NewSyncer creates a profile index syncer.
func NewSyncer(profiles ProfileLister, indexer *Indexer, logger *zap.Logger) *Syncer {
	return &Syncer{profiles: profiles, indexer: indexer, logger: logger.Named("ProfileSync")}
}

// Run pages through the profiles collection in batches of batchSize and bulk-indexes each
// batch. A failed bulk request is counted and the run continues with the next page.
func (s *Syncer) Run(ctx context.Context, batchSize int, refresh string) error {
	if !s.indexer.Enabled() {
		return fmt.Errorf("profile sync needs ELASTICSEARCH_URL to be set")
	}
	if batchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	if err := s.indexer.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("failed to create/verify profiles index: %w", err)
	}

	s.logger.Info("Starting profile synchronization to Elasticsearch...",
		zap.Int("batchSize", batchSize),
		zap.String("esRefreshPolicy", refresh),
	)

	cursor := ""
	totalSynced, totalFailed, batchNumber := 0, 0, 1
	for {
		page, next, err := s.profiles.ListPage(ctx, cursor, batchSize)
		if err != nil {
			return fmt.Errorf("failed to fetch batch %d: %w", batchNumber, err)
		}
		if len(page) > 0 {
			summaries := make([]shared.ProfileSummary, 0, len(page))
			for i := range page {
				summaries = append(summaries, page[i].Summary())
			}

			result, err := s.indexer.BulkIndex(ctx, summaries, refresh)
			if err != nil {
				s.logger.Error("Bulk request failed", zap.Int("batchNumber", batchNumber), zap.Error(err))
				result.Failed = len(summaries) - result.Synced
			}
			totalSynced += result.Synced
			totalFailed += result.Failed
			s.logger.Info("Batch processed.",
				zap.Int("batchNumber", batchNumber),
				zap.Int("syncedInBatch", result.Synced),
				zap.Int("failedInBatch", result.Failed),
			)
		}

		if next == "" {
			break
		}
		cursor = next
		batchNumber++
	}

	s.logger.Info("Profile synchronization finished.",
		zap.Int("totalSynced", totalSynced),
		zap.Int("totalFailed", totalFailed),
	)
	if totalFailed > 0 {
		return fmt.Errorf("%d profiles failed to sync", totalFailed)
	}
	return nil
}
