package providers

import (
	"github.com/samber/do/v2"

	"github.com/alawler14/Bibliotheca/internal/cache"
	"github.com/alawler14/Bibliotheca/internal/config"
	"github.com/alawler14/Bibliotheca/internal/googlebooks"
	"github.com/alawler14/Bibliotheca/internal/logger"
	"github.com/alawler14/Bibliotheca/internal/ratelimit"
	"github.com/alawler14/Bibliotheca/internal/service"
)

// SearchCacheHandle wraps the search cache with shutdown capability.
type SearchCacheHandle struct {
	*cache.Search
}

// Shutdown implements do.Shutdownable.
func (h *SearchCacheHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideSearchCache provides the TTL cache for upstream search responses.
func ProvideSearchCache(i do.Injector) (*SearchCacheHandle, error) {
	return &SearchCacheHandle{Search: cache.NewSearch(cache.DefaultTTL)}, nil
}

// RateLimiterHandle wraps the daily search limiter with shutdown capability.
type RateLimiterHandle struct {
	*ratelimit.Daily
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRateLimiter provides the per-client daily search quota.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return &RateLimiterHandle{Daily: ratelimit.New(cfg.Search.DailyLimit)}, nil
}

// CatalogClientHandle wraps the Google Books client with shutdown capability.
type CatalogClientHandle struct {
	*googlebooks.Client
}

// Shutdown implements do.Shutdownable.
func (h *CatalogClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideCatalogClient provides the Google Books volumes client.
func ProvideCatalogClient(i do.Injector) (*CatalogClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := googlebooks.New(cfg.GoogleBooks.APIKey, log.Logger)

	if cfg.GoogleBooks.APIKey == "" {
		log.Info("Google Books client running without API key")
	}

	return &CatalogClientHandle{Client: client}, nil
}

// ProvideSearchService provides the cached search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	catalogHandle := do.MustInvoke[*CatalogClientHandle](i)
	cacheHandle := do.MustInvoke[*SearchCacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(catalogHandle.Client, cacheHandle.Search, log.Logger), nil
}
