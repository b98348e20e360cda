package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
	Logger             *logrus.Entry
}

// SearchService answers menu searches and records every outcome
type SearchService struct {
	matcher      *MatchingService
	cache        domain.CacheRepository
	searchLogger domain.SearchLogger
	cacheTTL     time.Duration
	log          *logrus.Entry
}

// NewSearchService creates a new search service with dependencies.
// cache may be nil to disable result caching.
func NewSearchService(
	corpus *Corpus,
	cache domain.CacheRepository,
	searchLogger domain.SearchLogger,
	config SearchServiceConfig,
) *SearchService {
	log := config.Logger
	if log == nil {
		log = logrus.WithField("component", "search_service")
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &SearchService{
		matcher: NewMatchingService(corpus, MatchConfig{
			EnableDebugLogging: config.EnableDebugLogging,
			Logger:             log.WithField("component", "matcher"),
		}),
		cache:        cache,
		searchLogger: searchLogger,
		cacheTTL:     cacheTTL,
		log:          log,
	}
}

// Search matches the raw query, logs the outcome and shapes the response.
// Flow: check cache -> match -> cache -> log -> shape
// The returned error is always nil; it exists for the SearchUsecase port.
func (s *SearchService) Search(ctx context.Context, query string) (*domain.SearchResponse, error) {
	cacheKey := generateCacheKey(query)

	result, ok := s.getFromCache(ctx, cacheKey)
	if !ok {
		result = s.matcher.Match(query)
		s.setInCache(ctx, cacheKey, result)
	}

	if s.searchLogger != nil {
		s.searchLogger.Log(query, result.Status(), result.ResultNames())
	}

	return shapeResponse(result), nil
}

// generateCacheKey keys results by normalized query; matching depends on nothing else.
// Format: "search:{normalized_query}"
func generateCacheKey(query string) string {
	return "search:" + Normalize(query)
}

// getFromCache retrieves a match result from cache
func (s *SearchService) getFromCache(ctx context.Context, key string) (*domain.MatchResult, bool) {
	if s.cache == nil {
		return nil, false
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	result, ok := value.(*domain.MatchResult)
	return result, ok
}

// setInCache stores a match result; failures only cost a recomputation
func (s *SearchService) setInCache(ctx context.Context, key string, result *domain.MatchResult) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
		s.log.WithError(err).Warn("failed to cache search result")
	}
}

// shapeResponse converts a match result into the user-facing response
func shapeResponse(result *domain.MatchResult) *domain.SearchResponse {
	if result.Found {
		item := result.Item
		return &domain.SearchResponse{Found: &domain.FoundResponse{
			Status:      domain.ResponseFound,
			ItemName:    item.Name,
			Description: item.Description,
			Price:       item.Price,
			Category:    item.Category,
			Image:       item.ImageURL,
			Restaurant:  item.Restaurant,
			Rating:      domain.RoundRating(item.Rating),
		}}
	}

	recommendations := result.Recommendations
	if recommendations == nil {
		recommendations = []domain.Recommendation{}
	}

	return &domain.SearchResponse{NotFound: &domain.NotFoundResponse{
		Status:          domain.ResponseNotFound,
		Message:         domain.NotFoundMessage,
		Recommendations: recommendations,
	}}
}

// CorpusSize returns the number of catalog items being searched
func (s *SearchService) CorpusSize() int {
	return s.matcher.corpus.Size()
}
