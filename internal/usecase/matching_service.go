package usecase

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

// MaxRecommendations is the number of similar items returned on fallback
const MaxRecommendations = 3

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableDebugLogging bool
	Logger             *logrus.Entry
}

// MatchingService resolves queries against a read-only corpus
type MatchingService struct {
	corpus             *Corpus
	enableDebugLogging bool
	logger             *logrus.Entry
}

// scoredRow pairs a corpus row with its similarity to the query
type scoredRow struct {
	row   int
	score float64
}

// NewMatchingService creates a new matching service over the given corpus
func NewMatchingService(corpus *Corpus, config MatchConfig) *MatchingService {
	logger := config.Logger
	if logger == nil {
		logger = logrus.WithField("component", "matcher")
	}

	return &MatchingService{
		corpus:             corpus,
		enableDebugLogging: config.EnableDebugLogging,
		logger:             logger,
	}
}

// Match returns the first catalog item whose normalized name equals the
// normalized query, or the most similar items when there is none.
// Every query gets an answer; there is no failure path.
func (s *MatchingService) Match(query string) *domain.MatchResult {
	normalized := Normalize(query)

	if item := s.findExact(normalized); item != nil {
		if s.enableDebugLogging {
			s.logger.WithFields(logrus.Fields{"query": query, "item": item.Name}).Debug("exact match")
		}
		return &domain.MatchResult{Found: true, Item: item}
	}

	return &domain.MatchResult{Recommendations: s.rankSimilar(normalized)}
}

// findExact scans items in load order; first occurrence wins.
// A query that normalizes to nothing never matches, even a blank-named item.
func (s *MatchingService) findExact(normalized string) *domain.CatalogItem {
	if normalized == "" {
		return nil
	}

	items := s.corpus.Items()
	for i := range items {
		if items[i].NormalizedName == normalized {
			item := items[i]
			return &item
		}
	}
	return nil
}

// rankSimilar scores every row against the query and keeps the top results.
// Ties keep load order.
func (s *MatchingService) rankSimilar(normalized string) []domain.Recommendation {
	index := s.corpus.Index()
	queryVec := index.Transform(normalized)

	scored := make([]scoredRow, index.Rows())
	for i := range scored {
		scored[i] = scoredRow{row: i, score: CosineSimilarity(queryVec, index.Row(i))}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	limit := min(MaxRecommendations, len(scored))
	items := s.corpus.Items()
	recommendations := make([]domain.Recommendation, 0, limit)
	for _, sr := range scored[:limit] {
		item := items[sr.row]
		recommendations = append(recommendations, domain.Recommendation{
			Name:       item.Name,
			Price:      item.Price,
			ImageURL:   item.ImageURL,
			Restaurant: item.Restaurant,
			Score:      sr.score,
		})

		if s.enableDebugLogging {
			s.logger.WithFields(logrus.Fields{
				"query": normalized,
				"item":  item.Name,
				"score": sr.score,
			}).Debug("similarity candidate")
		}
	}

	return recommendations
}
