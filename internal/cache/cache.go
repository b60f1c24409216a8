// Package cache provides the in-process TTL cache for upstream search
// responses.
package cache

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/alawler14/Bibliotheca/internal/domain"
)

// DefaultTTL is how long a cached search response stays servable.
const DefaultTTL = time.Hour

// Search caches shaped search responses keyed by the fully-resolved
// upstream request URL, so queries that differ in parameters or
// pagination occupy distinct entries. Entries expire a fixed TTL after
// insertion; reads never extend an entry's lifetime. There is no size
// bound: the background sweep is what keeps memory in check for keys
// that are written once and never read again.
type Search struct {
	items *ttlcache.Cache[string, domain.SearchResults]

	stopOnce sync.Once
}

// NewSearch creates a search cache and starts its background sweep.
// A non-positive ttl falls back to DefaultTTL.
func NewSearch(ttl time.Duration) *Search {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	items := ttlcache.New(
		ttlcache.WithTTL[string, domain.SearchResults](ttl),
		ttlcache.WithDisableTouchOnHit[string, domain.SearchResults](),
	)
	go items.Start()

	return &Search{items: items}
}

// Get returns the cached response for key. Entries older than the TTL
// report absent even before the sweep gets to them.
func (s *Search) Get(key string) (domain.SearchResults, bool) {
	item := s.items.Get(key)
	if item == nil {
		return domain.SearchResults{}, false
	}
	return item.Value(), true
}

// Put stores a response under key, replacing any previous entry and
// restarting its TTL.
func (s *Search) Put(key string, results domain.SearchResults) {
	s.items.Set(key, results, ttlcache.DefaultTTL)
}

// Len reports the number of live entries.
func (s *Search) Len() int {
	return s.items.Len()
}

// Stop halts the background sweep. The cache itself stays readable.
func (s *Search) Stop() {
	s.stopOnce.Do(s.items.Stop)
}
