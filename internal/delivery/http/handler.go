package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

// ServiceName and Version are reported by the health endpoint
const (
	ServiceName = "menufinder"
	Version     = "1.0.0"
)

// SearchUsecase is the search behaviour the handler depends on
type SearchUsecase interface {
	Search(ctx context.Context, query string) (*domain.SearchResponse, error)
	CorpusSize() int
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService SearchUsecase
	logger        *logrus.Entry
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService SearchUsecase, logger *logrus.Entry) *Handler {
	if logger == nil {
		logger = logrus.WithField("component", "http")
	}
	return &Handler{
		searchService: searchService,
		logger:        logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	corpusSize := 0
	if h.searchService != nil {
		corpusSize = h.searchService.CorpusSize()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     ServiceName,
		"version":     Version,
		"corpus_size": corpusSize,
	})
}

// Search handles menu search requests. The body is {"query": "..."}; a missing
// or malformed body is searched as the empty query rather than rejected.
func (h *Handler) Search(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "search service not configured",
		})
		return
	}

	query := h.extractQuery(c)

	resp, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.WithError(err).WithField(requestIDKey, c.GetString(requestIDKey)).Error("search failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "search failed",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// extractQuery pulls the query out of the JSON body, coercing non-string values
func (h *Handler) extractQuery(c *gin.Context) string {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		return ""
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.WithError(err).Debug("malformed search body, using empty query")
		return ""
	}

	return cast.ToString(payload["query"])
}
