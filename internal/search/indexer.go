// File: internal/search/indexer.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"adventure_backend/internal/config"
	platformElasticsearch "adventure_backend/internal/platform/elasticsearch"
	"adventure_backend/internal/shared"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// Indexer writes profile documents into the profiles index. A nil client turns every
// call into a no-op.
type Indexer struct {
	es     *platformElasticsearch.ESClientWrapper
	index  string
	logger *zap.Logger
}

// NewIndexer creates a profile indexer.
func NewIndexer(es *platformElasticsearch.ESClientWrapper, cfg *config.Config, logger *zap.Logger) *Indexer {
	return &Indexer{es: es, index: cfg.ProfilesIndexName, logger: logger.Named("ProfileIndexer")}
}

// Enabled reports whether a search cluster is configured.
func (i *Indexer) Enabled() bool {
	return i.es != nil
}

// EnsureIndex creates the profiles index when it is missing.
func (i *Indexer) EnsureIndex(ctx context.Context) error {
	if !i.Enabled() {
		return nil
	}
	mapping, err := ProfilesMapping()
	if err != nil {
		return err
	}
	return platformElasticsearch.CreateIndexIfNotExists(ctx, i.es, i.index, mapping, i.logger)
}

// IndexProfile upserts a single profile, keyed by uid.
func (i *Indexer) IndexProfile(ctx context.Context, summary shared.ProfileSummary) error {
	if !i.Enabled() {
		return nil
	}
	body, err := json.Marshal(ToDocument(summary))
	if err != nil {
		return fmt.Errorf("error marshalling profile %s for index: %w", summary.UID, err)
	}

	res, err := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: summary.UID,
		Body:       bytes.NewReader(body),
	}.Do(ctx, i.es.Client)
	if err != nil {
		return fmt.Errorf("index request for profile %s failed: %w", summary.UID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index request for profile %s returned %s", summary.UID, res.Status())
	}
	i.logger.Debug("Profile indexed", zap.String("uid", summary.UID))
	return nil
}

// BulkResult counts the outcome of one bulk request.
type BulkResult struct {
	Synced int
	Failed int
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string                 `json:"_id"`
			Status int                    `json:"status"`
			Error  map[string]interface{} `json:"error,omitempty"`
		} `json:"index"`
	} `json:"items"`
}

// BulkIndex indexes a batch of profiles in one request. refresh is passed through as the
// bulk refresh policy ("true", "false" or "wait_for").
func (i *Indexer) BulkIndex(ctx context.Context, summaries []shared.ProfileSummary, refresh string) (BulkResult, error) {
	var result BulkResult
	if !i.Enabled() || len(summaries) == 0 {
		return result, nil
	}

	var body strings.Builder
	for _, s := range summaries {
		doc, err := json.Marshal(ToDocument(s))
		if err != nil {
			i.logger.Error("Failed to convert profile to index document", zap.String("uid", s.UID), zap.Error(err))
			result.Failed++
			continue
		}
		action, _ := json.Marshal(map[string]interface{}{
			"index": map[string]string{"_index": i.index, "_id": s.UID},
		})
		body.Write(action)
		body.WriteByte('\n')
		body.Write(doc)
		body.WriteByte('\n')
	}
	if body.Len() == 0 {
		return result, nil
	}

	res, err := esapi.BulkRequest{
		Body:    strings.NewReader(body.String()),
		Refresh: refresh,
	}.Do(ctx, i.es.Client)
	if err != nil {
		return result, fmt.Errorf("bulk request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return result, fmt.Errorf("bulk request returned %s", res.Status())
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		result.Failed = len(summaries)
		return result, fmt.Errorf("failed to parse bulk response: %w", err)
	}
	for _, item := range parsed.Items {
		if item.Index.Error != nil {
			i.logger.Error("Failed to index document in bulk batch",
				zap.String("uid", item.Index.ID),
				zap.Any("error", item.Index.Error),
				zap.Int("status", item.Index.Status),
			)
			result.Failed++
			continue
		}
		result.Synced++
	}
	return result, nil
}
