package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alawler14/Bibliotheca/internal/domain"
)

func testResults(query string) domain.SearchResults {
	return domain.SearchResults{
		Query:      query,
		TotalItems: 1,
		Books: []domain.SearchResult{
			{ID: "vol-1", Title: "The Wandering Inn", Authors: "pirateaba"},
		},
	}
}

func TestSearch_GetReturnsStoredValue(t *testing.T) {
	c := NewSearch(time.Minute)
	defer c.Stop()

	want := testResults("wandering inn")
	c.Put("https://example.test/v1?q=wandering+inn", want)

	got, ok := c.Get("https://example.test/v1?q=wandering+inn")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSearch_MissingKey(t *testing.T) {
	c := NewSearch(time.Minute)
	defer c.Stop()

	got, ok := c.Get("https://example.test/v1?q=never+stored")
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestSearch_EntriesExpire(t *testing.T) {
	c := NewSearch(30 * time.Millisecond)
	defer c.Stop()

	c.Put("key", testResults("q"))

	_, ok := c.Get("key")
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)

	_, ok = c.Get("key")
	assert.False(t, ok, "entry should report absent once its TTL lapses")
}

func TestSearch_ReadsDoNotExtendTTL(t *testing.T) {
	c := NewSearch(60 * time.Millisecond)
	defer c.Stop()

	c.Put("key", testResults("q"))

	// Keep reading past the original deadline; hits must not push it out.
	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		c.Get("key")
	}

	_, ok := c.Get("key")
	assert.False(t, ok, "reads must not extend an entry's lifetime")
}

func TestSearch_PutRestartsTTL(t *testing.T) {
	c := NewSearch(200 * time.Millisecond)
	defer c.Stop()

	c.Put("key", testResults("old"))
	time.Sleep(150 * time.Millisecond)
	c.Put("key", testResults("new"))
	time.Sleep(150 * time.Millisecond)

	// The first write's deadline has passed; only a restarted TTL keeps
	// the entry alive.
	got, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "new", got.Query)
}

func TestSearch_DistinctKeysPerURL(t *testing.T) {
	c := NewSearch(time.Minute)
	defer c.Stop()

	c.Put("https://example.test/v1?q=dune&startIndex=0", testResults("dune p1"))
	c.Put("https://example.test/v1?q=dune&startIndex=20", testResults("dune p2"))

	assert.Equal(t, 2, c.Len())

	got, ok := c.Get("https://example.test/v1?q=dune&startIndex=0")
	require.True(t, ok)
	assert.Equal(t, "dune p1", got.Query)
}

func TestSearch_SweepReclaimsUnreadEntries(t *testing.T) {
	c := NewSearch(20 * time.Millisecond)
	defer c.Stop()

	for i := 0; i < 5; i++ {
		c.Put(fmt.Sprintf("key-%d", i), testResults("q"))
	}

	// The entries are never read again; the sweep alone should reclaim
	// them.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Len() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("cache still holds %d entries after sweep deadline", c.Len())
}
