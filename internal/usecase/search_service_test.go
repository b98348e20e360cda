package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

// --- Mock implementations ---

type loggedSearch struct {
	query   string
	status  domain.SearchStatus
	results []string
}

// recordingLogger captures every logged search
type recordingLogger struct {
	mu      sync.Mutex
	entries []loggedSearch
}

func (l *recordingLogger) Log(query string, status domain.SearchStatus, results []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, loggedSearch{query: query, status: status, results: results})
}

// mockCacheRepository is a mock implementation of domain.CacheRepository
type mockCacheRepository struct {
	data map[string]interface{}
	sets int
}

func newMockCacheRepository() *mockCacheRepository {
	return &mockCacheRepository{data: make(map[string]interface{})}
}

func (m *mockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *mockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.data[key] = value
	m.sets++
	return nil
}

func (m *mockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func newTestCorpus(t *testing.T) *Corpus {
	t.Helper()
	corpus, err := BuildCorpus([]domain.CatalogItem{
		{
			Name:        "Cheese Pizza",
			Description: "Mozzarella and tomato",
			Price:       9.99,
			Category:    "Pizza",
			ImageURL:    "https://img.example.com/cheese.jpg",
			Restaurant:  "Luigi's",
			Rating:      4.567,
		},
		{Name: "Pepperoni Pizza", Price: 11.49, ImageURL: "pep.jpg", Restaurant: "Luigi's", Rating: 4.5},
		{Name: "Garlic Knots", Price: 4.25, ImageURL: "knots.jpg", Restaurant: "Luigi's", Rating: 4.0},
		{Name: "Caesar Salad", Price: 7.5, ImageURL: "salad.jpg", Restaurant: "Green Bowl", Rating: 3.9},
		{Name: "Lemonade", Price: 2.99, ImageURL: "lemon.jpg", Restaurant: "Green Bowl", Rating: 4.2},
	})
	require.NoError(t, err)
	return corpus
}

func TestSearchService_Found(t *testing.T) {
	logger := &recordingLogger{}
	svc := NewSearchService(newTestCorpus(t), nil, logger, SearchServiceConfig{})

	resp, err := svc.Search(context.Background(), "  CHEESE PIZZA  ")
	require.NoError(t, err)

	// surrounding spaces are kept by normalization, so this is a fallback
	assert.False(t, resp.IsFound())

	resp, err = svc.Search(context.Background(), "Cheese Pizza!")
	require.NoError(t, err)
	require.True(t, resp.IsFound())

	found := resp.Found
	assert.Equal(t, domain.ResponseFound, found.Status)
	assert.Equal(t, "Cheese Pizza", found.ItemName)
	assert.Equal(t, "Mozzarella and tomato", found.Description)
	assert.Equal(t, 9.99, found.Price)
	assert.Equal(t, "Pizza", found.Category)
	assert.Equal(t, "https://img.example.com/cheese.jpg", found.Image)
	assert.Equal(t, "Luigi's", found.Restaurant)
	assert.Equal(t, domain.Rating(4.6), found.Rating)

	require.Len(t, logger.entries, 2)
	assert.Equal(t, loggedSearch{
		query:   "Cheese Pizza!",
		status:  domain.StatusExactMatch,
		results: []string{"Cheese Pizza"},
	}, logger.entries[1])
}

func TestSearchService_NotFound(t *testing.T) {
	logger := &recordingLogger{}
	svc := NewSearchService(newTestCorpus(t), nil, logger, SearchServiceConfig{})

	resp, err := svc.Search(context.Background(), "zzzznotarealitem")
	require.NoError(t, err)
	require.False(t, resp.IsFound())

	nf := resp.NotFound
	assert.Equal(t, domain.ResponseNotFound, nf.Status)
	assert.Equal(t, domain.NotFoundMessage, nf.Message)
	require.Len(t, nf.Recommendations, 3)
	assert.Equal(t, "Cheese Pizza", nf.Recommendations[0].Name)
	assert.Equal(t, "Pepperoni Pizza", nf.Recommendations[1].Name)
	assert.Equal(t, "Garlic Knots", nf.Recommendations[2].Name)

	require.Len(t, logger.entries, 1)
	assert.Equal(t, domain.StatusSimilarityFallback, logger.entries[0].status)
	assert.Equal(t, []string{"Cheese Pizza", "Pepperoni Pizza", "Garlic Knots"}, logger.entries[0].results)
}

func TestSearchService_ResponseJSON(t *testing.T) {
	svc := NewSearchService(newTestCorpus(t), nil, nil, SearchServiceConfig{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.Search(context.Background(), "lemonade")
		require.NoError(t, err)

		data, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"status": "found",
			"item_name": "Lemonade",
			"description": "",
			"price": 2.99,
			"category": "",
			"image": "lemon.jpg",
			"restaurant": "Green Bowl",
			"rating": 4.2
		}`, string(data))
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := svc.Search(context.Background(), "green salad")
		require.NoError(t, err)

		data, err := json.Marshal(resp)
		require.NoError(t, err)

		var body struct {
			Status          string                   `json:"status"`
			Message         string                   `json:"message"`
			Recommendations []map[string]interface{} `json:"recommendations"`
		}
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, "not_found", body.Status)
		require.NotEmpty(t, body.Recommendations)
		assert.Equal(t, "Caesar Salad", body.Recommendations[0]["menuItemName"])
		for _, rec := range body.Recommendations {
			assert.Len(t, rec, 4)
			assert.Contains(t, rec, "menuItemCurrentPrice")
			assert.Contains(t, rec, "menuItemImageUrl")
			assert.Contains(t, rec, "restaurantName")
		}
	})
}

func TestSearchService_Cache(t *testing.T) {
	cache := newMockCacheRepository()
	logger := &recordingLogger{}
	svc := NewSearchService(newTestCorpus(t), cache, logger, SearchServiceConfig{CacheTTL: time.Minute})
	ctx := context.Background()

	_, err := svc.Search(ctx, "Lemonade")
	require.NoError(t, err)
	_, err = svc.Search(ctx, "LEMONADE")
	require.NoError(t, err)

	assert.Equal(t, 1, cache.sets, "second search should be served from cache")
	assert.Contains(t, cache.data, "search:lemonade")

	// every request is logged with its own raw query
	require.Len(t, logger.entries, 2)
	assert.Equal(t, "Lemonade", logger.entries[0].query)
	assert.Equal(t, "LEMONADE", logger.entries[1].query)
}

func TestSearchService_EmptyQuery(t *testing.T) {
	svc := NewSearchService(newTestCorpus(t), nil, nil, SearchServiceConfig{})

	resp, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	require.False(t, resp.IsFound())
	assert.Len(t, resp.NotFound.Recommendations, 3)
	assert.Equal(t, 5, svc.CorpusSize())
}

func TestSearchService_EmptyQueryWithBlankCatalogName(t *testing.T) {
	corpus, err := BuildCorpus(menuItems("Cheese Pizza", "", "Salad"))
	require.NoError(t, err)

	logger := &recordingLogger{}
	svc := NewSearchService(corpus, nil, logger, SearchServiceConfig{})

	resp, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	require.False(t, resp.IsFound())
	assert.Len(t, resp.NotFound.Recommendations, 3)

	require.Len(t, logger.entries, 1)
	assert.Equal(t, domain.StatusSimilarityFallback, logger.entries[0].status)
}

func TestSearchService_CancelledContextStillAnswers(t *testing.T) {
	logger := &recordingLogger{}
	svc := NewSearchService(newTestCorpus(t), nil, logger, SearchServiceConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := svc.Search(ctx, "something not on the menu")
	require.NoError(t, err)
	require.False(t, resp.IsFound())
	assert.Len(t, resp.NotFound.Recommendations, 3)

	require.Len(t, logger.entries, 1, "every answered search is logged")
	assert.Equal(t, "something not on the menu", logger.entries[0].query)
}
