package search

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"adventure_backend/internal/common"
	"adventure_backend/internal/config"
	platformElasticsearch "adventure_backend/internal/platform/elasticsearch"
	"adventure_backend/internal/profile"
	"adventure_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeES records what the client sends and answers with canned bodies.
type fakeES struct {
	mu          sync.Mutex
	indexed     map[string]ProfileDocument
	bulkLines   []string
	searchBody  map[string]interface{}
	searchHits  []ProfileDocument
	failBulkIDs map[string]bool
}

func newFakeES() *fakeES {
	return &fakeES{indexed: map[string]ProfileDocument{}, failBulkIDs: map[string]bool{}}
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"version":{"number":"8.18.0"}}`)
	case r.Method == http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case strings.HasSuffix(r.URL.Path, "/_bulk"):
		f.handleBulk(w, r)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_ = json.NewDecoder(r.Body).Decode(&f.searchBody)
		hits := make([]map[string]interface{}, 0, len(f.searchHits))
		for _, d := range f.searchHits {
			hits = append(hits, map[string]interface{}{"_source": d})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"hits": map[string]interface{}{"hits": hits}})
	case strings.Contains(r.URL.Path, "/_doc/"):
		var doc ProfileDocument
		_ = json.NewDecoder(r.Body).Decode(&doc)
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		f.indexed[id] = doc
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (f *fakeES) handleBulk(w http.ResponseWriter, r *http.Request) {
	type itemResult struct {
		ID     string                 `json:"_id"`
		Status int                    `json:"status"`
		Error  map[string]interface{} `json:"error,omitempty"`
	}
	var items []map[string]itemResult
	hasErrors := false

	scanner := bufio.NewScanner(r.Body)
	for scanner.Scan() {
		actionLine := scanner.Text()
		if actionLine == "" {
			continue
		}
		f.bulkLines = append(f.bulkLines, actionLine)
		var action struct {
			Index struct {
				ID string `json:"_id"`
			} `json:"index"`
		}
		_ = json.Unmarshal([]byte(actionLine), &action)
		if !scanner.Scan() {
			break
		}
		var doc ProfileDocument
		_ = json.Unmarshal(scanner.Bytes(), &doc)

		res := itemResult{ID: action.Index.ID, Status: http.StatusCreated}
		if f.failBulkIDs[action.Index.ID] {
			res.Status = http.StatusBadRequest
			res.Error = map[string]interface{}{"type": "mapper_parsing_exception"}
			hasErrors = true
		} else {
			f.indexed[action.Index.ID] = doc
		}
		items = append(items, map[string]itemResult{"index": res})
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"errors": hasErrors, "items": items})
}

func newTestClient(t *testing.T, fake *fakeES) (*platformElasticsearch.ESClientWrapper, *config.Config) {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	cfg := &config.Config{ElasticsearchURL: srv.URL, ProfilesIndexName: "profiles", ProfileSearchLimit: 75}
	client, err := platformElasticsearch.NewClient(cfg, zap.NewNop())
	require.NoError(t, err)
	return client, cfg
}

func TestToDocument(t *testing.T) {
	doc := ToDocument(shared.ProfileSummary{UID: "u1", Name: "Ada Lovelace", Email: "ada@example.com"})
	assert.Equal(t, "ada lovelace", doc.NameLower)
	assert.Equal(t, "Ada Lovelace", doc.Summary().Name)

	mapping, err := ProfilesMapping()
	require.NoError(t, err)
	assert.Contains(t, mapping, `"name_lower":{"type":"keyword"}`)
}

func TestIndexer_IndexProfile(t *testing.T) {
	fake := newFakeES()
	client, cfg := newTestClient(t, fake)
	indexer := NewIndexer(client, cfg, zap.NewNop())

	err := indexer.IndexProfile(context.Background(), shared.ProfileSummary{UID: "u1", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada", fake.indexed["u1"].NameLower)
}

func TestIndexer_DisabledIsNoop(t *testing.T) {
	indexer := NewIndexer(nil, &config.Config{ProfilesIndexName: "profiles"}, zap.NewNop())
	assert.False(t, indexer.Enabled())
	assert.NoError(t, indexer.IndexProfile(context.Background(), shared.ProfileSummary{UID: "u1"}))
	assert.NoError(t, indexer.EnsureIndex(context.Background()))
	res, err := indexer.BulkIndex(context.Background(), []shared.ProfileSummary{{UID: "u1"}}, "false")
	assert.NoError(t, err)
	assert.Zero(t, res.Synced)
}

func TestIndexer_BulkIndexCountsItemFailures(t *testing.T) {
	fake := newFakeES()
	fake.failBulkIDs["bad"] = true
	client, cfg := newTestClient(t, fake)
	indexer := NewIndexer(client, cfg, zap.NewNop())

	res, err := indexer.BulkIndex(context.Background(), []shared.ProfileSummary{
		{UID: "a", Name: "Ann"}, {UID: "bad", Name: "Bad"}, {UID: "c", Name: "Cy"},
	}, "wait_for")
	require.NoError(t, err)
	assert.Equal(t, BulkResult{Synced: 2, Failed: 1}, res)
	assert.Contains(t, fake.bulkLines[0], `"_index":"profiles"`)
}

func TestService_SearchByName(t *testing.T) {
	fake := newFakeES()
	fake.searchHits = []ProfileDocument{{UID: "u2", Name: "Adam", NameLower: "adam"}}
	client, cfg := newTestClient(t, fake)
	svc := NewService(client, cfg, zap.NewNop())

	results, err := svc.SearchByName(context.Background(), "caller", "  AD ")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Adam", results[0].Name)

	assert.EqualValues(t, 75, fake.searchBody["size"])
	raw, _ := json.Marshal(fake.searchBody)
	assert.Contains(t, string(raw), `"value":"ad"`)
	assert.Contains(t, string(raw), `"uid":"caller"`)
}

func TestService_EmptyQueryAndDisabled(t *testing.T) {
	disabled := NewService(nil, &config.Config{}, zap.NewNop())
	_, err := disabled.SearchByName(context.Background(), "caller", "ad")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)

	fake := newFakeES()
	client, cfg := newTestClient(t, fake)
	results, err := NewService(client, cfg, zap.NewNop()).SearchByName(context.Background(), "caller", "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Nil(t, fake.searchBody)
}

func TestHandler_SearchUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	fakeAuth := func(c *gin.Context) { c.Set(common.FirebaseUIDKey, "caller"); c.Next() }
	NewHandler(NewService(nil, &config.Config{}, zap.NewNop()), zap.NewNop()).RegisterRoutes(router.Group("/api/v1"), fakeAuth)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/search?q=ad", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type MockProfileLister struct {
	mock.Mock
}

func (m *MockProfileLister) ListPage(ctx context.Context, afterUID string, limit int) ([]profile.Profile, string, error) {
	args := m.Called(ctx, afterUID, limit)
	var page []profile.Profile
	if args.Get(0) != nil {
		page = args.Get(0).([]profile.Profile)
	}
	return page, args.String(1), args.Error(2)
}

func TestSyncer_PagesThroughProfiles(t *testing.T) {
	fake := newFakeES()
	client, cfg := newTestClient(t, fake)
	lister := new(MockProfileLister)
	lister.On("ListPage", mock.Anything, "", 2).Return([]profile.Profile{{UID: "a", Name: "Ann"}, {UID: "b", Name: "Bo"}}, "b", nil)
	lister.On("ListPage", mock.Anything, "b", 2).Return([]profile.Profile{{UID: "c", Name: "Cy"}}, "", nil)

	syncer := NewSyncer(lister, NewIndexer(client, cfg, zap.NewNop()), zap.NewNop())
	require.NoError(t, syncer.Run(context.Background(), 2, "false"))

	assert.Len(t, fake.indexed, 3)
	lister.AssertExpectations(t)
}

func TestSyncer_ReportsFailures(t *testing.T) {
	fake := newFakeES()
	fake.failBulkIDs["b"] = true
	client, cfg := newTestClient(t, fake)
	lister := new(MockProfileLister)
	lister.On("ListPage", mock.Anything, "", 10).Return([]profile.Profile{{UID: "a"}, {UID: "b"}}, "", nil)

	err := NewSyncer(lister, NewIndexer(client, cfg, zap.NewNop()), zap.NewNop()).Run(context.Background(), 10, "false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 profiles failed")
}

func TestSyncer_ListError(t *testing.T) {
	fake := newFakeES()
	client, cfg := newTestClient(t, fake)
	lister := new(MockProfileLister)
	lister.On("ListPage", mock.Anything, "", 10).Return(nil, "", errors.New("unavailable"))

	err := NewSyncer(lister, NewIndexer(client, cfg, zap.NewNop()), zap.NewNop()).Run(context.Background(), 10, "false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
}
