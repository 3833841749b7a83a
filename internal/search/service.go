// File: internal/search/service.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"adventure_backend/internal/common"
	"adventure_backend/internal/config"
	platformElasticsearch "adventure_backend/internal/platform/elasticsearch"
	"adventure_backend/internal/shared"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// Service finds other users by name.
type Service interface {
	SearchByName(ctx context.Context, callerUID, query string) ([]shared.ProfileSummary, error)
}

type service struct {
	es     *platformElasticsearch.ESClientWrapper
	index  string
	limit  int
	logger *zap.Logger
}

// NewService creates the profile search service. es may be nil, in which case every
// search reports the service as unavailable.
func NewService(es *platformElasticsearch.ESClientWrapper, cfg *config.Config, logger *zap.Logger) Service {
	limit := cfg.ProfileSearchLimit
	if limit <= 0 {
		limit = 75
	}
	return &service{es: es, index: cfg.ProfilesIndexName, limit: limit, logger: logger.Named("SearchService")}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source ProfileDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchByName returns profiles whose name starts with query, ignoring case, excluding
// the caller. An empty query returns no results.
func (s *service) SearchByName(ctx context.Context, callerUID, query string) ([]shared.ProfileSummary, error) {
	if s.es == nil {
		return nil, common.ErrServiceUnavailable.WithDetails("Profile search is not configured.")
	}
	prefix := strings.ToLower(strings.TrimSpace(query))
	if prefix == "" {
		return []shared.ProfileSummary{}, nil
	}

	body, err := json.Marshal(buildPrefixQuery(prefix, callerUID, s.limit))
	if err != nil {
		return nil, fmt.Errorf("error marshalling search query: %w", err)
	}

	res, err := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, s.es.Client)
	if err != nil {
		s.logger.Error("Search request failed", zap.Error(err))
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logger.Error("Search request returned an error", zap.String("status", res.Status()))
		return nil, fmt.Errorf("search request returned %s", res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	results := make([]shared.ProfileSummary, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, hit.Source.Summary())
	}
	return results, nil
}

func buildPrefixQuery(prefix, callerUID string, limit int) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"filter": []interface{}{
			map[string]interface{}{"prefix": map[string]interface{}{"name_lower": map[string]interface{}{"value": prefix}}},
		},
	}
	if callerUID != "" {
		boolQuery["must_not"] = []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"uid": callerUID}},
		}
	}
	return map[string]interface{}{
		"size":  limit,
		"query": map[string]interface{}{"bool": boolQuery},
		"sort":  []interface{}{map[string]interface{}{"name_lower": "asc"}},
	}
}
