package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/alawler14/Bibliotheca/internal/cache"
	"github.com/alawler14/Bibliotheca/internal/domain"
	domainerrors "github.com/alawler14/Bibliotheca/internal/errors"
	"github.com/alawler14/Bibliotheca/internal/googlebooks"
)

// Catalog is the slice of the upstream client the search service
// depends on. *googlebooks.Client satisfies it; tests substitute a fake.
type Catalog interface {
	BuildSearchURL(query string, maxResults, startIndex int) string
	Search(ctx context.Context, query string, maxResults, startIndex int) (*domain.SearchResults, error)
	GetVolume(ctx context.Context, volumeID string) (*domain.SearchResult, error)
	Close()
}

// SearchService proxies book searches to the upstream catalog with a
// TTL cache in front. Cache keys are the fully-resolved upstream URLs,
// so two requests share an entry exactly when they would have made the
// same upstream call.
type SearchService struct {
	client Catalog
	cache  *cache.Search
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(client Catalog, cache *cache.Search, logger *slog.Logger) *SearchService {
	return &SearchService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Search runs a shaped catalog search, serving from cache when a fresh
// entry exists. A cached page is returned verbatim; only misses touch
// the upstream API. Upstream failures surface as a generic upstream
// error with the provider detail kept to the logs.
func (s *SearchService) Search(ctx context.Context, query string, maxResults, startIndex int) (*domain.SearchResults, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domainerrors.Validation("Search query is required")
	}

	key := s.client.BuildSearchURL(query, maxResults, startIndex)

	if results, ok := s.cache.Get(key); ok {
		s.logger.Debug("search cache hit",
			"query", query,
			"key", key,
		)
		return &results, nil
	}

	s.logger.Debug("search cache miss",
		"query", query,
		"key", key,
	)

	results, err := s.client.Search(ctx, query, maxResults, startIndex)
	if err != nil {
		s.logger.Warn("upstream search failed",
			"query", query,
			"error", err,
		)
		return nil, domainerrors.Upstream("Failed to search books").WithCause(err)
	}

	s.cache.Put(key, *results)

	return results, nil
}

// GetBook fetches shaped detail for a single volume. Detail lookups are
// not cached; the frontend hits this once per detail view and the
// payload carries the full-length description.
func (s *SearchService) GetBook(ctx context.Context, volumeID string) (*domain.SearchResult, error) {
	if strings.TrimSpace(volumeID) == "" {
		return nil, domainerrors.Validation("Book ID is required")
	}

	result, err := s.client.GetVolume(ctx, volumeID)
	if err != nil {
		if errors.Is(err, googlebooks.ErrNotFound) {
			return nil, domainerrors.NotFound("Book not found")
		}
		s.logger.Warn("upstream volume fetch failed",
			"volume_id", volumeID,
			"error", err,
		)
		return nil, domainerrors.Upstream("Failed to fetch book details").WithCause(err)
	}

	return result, nil
}

// CacheSize reports the number of live cache entries, exposed by the
// health endpoint.
func (s *SearchService) CacheSize() int {
	return s.cache.Len()
}

// Close releases resources.
func (s *SearchService) Close() {
	s.client.Close()
	s.cache.Stop()
}
