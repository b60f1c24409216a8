package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/alawler14/Bibliotheca/internal/auth"
	"github.com/alawler14/Bibliotheca/internal/cache"
	"github.com/alawler14/Bibliotheca/internal/domain"
	"github.com/alawler14/Bibliotheca/internal/ratelimit"
	"github.com/alawler14/Bibliotheca/internal/service"
	"github.com/alawler14/Bibliotheca/internal/store/sqlite"
	"github.com/alawler14/Bibliotheca/internal/validation"
)

const testTokenKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// testServer wraps the API server with a humatest client and the fakes
// behind it.
type testServer struct {
	*Server
	api     humatest.TestAPI
	catalog *fakeCatalog
	store   *sqlite.Store
}

func setupTestServer(t *testing.T) *testServer {
	return setupTestServerWithLimit(t, ratelimit.DefaultLimit)
}

func setupTestServerWithLimit(t *testing.T, limit int) *testServer {
	t.Helper()

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := auth.NewTokenService(testTokenKey)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	validator := validation.New()

	searchCache := cache.NewSearch(time.Hour)
	t.Cleanup(searchCache.Stop)

	limiter := ratelimit.New(limit)
	t.Cleanup(limiter.Stop)

	catalog := &fakeCatalog{}

	services := &Services{
		Auth:     service.NewAuthService(st, tokens, validator, logger),
		Search:   service.NewSearchService(catalog, searchCache, logger),
		Tracking: service.NewTrackingService(st, validator, logger),
	}

	srv := NewServer(services, limiter, logger)

	return &testServer{
		Server:  srv,
		api:     humatest.Wrap(t, srv.API()),
		catalog: catalog,
		store:   st,
	}
}

// registerTestUser creates an account and returns its session token.
func (ts *testServer) registerTestUser(t *testing.T, email string) string {
	t.Helper()

	resp := ts.api.Post("/auth/register", map[string]any{
		"email":    email,
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "register failed: %s", resp.Body.String())

	var body service.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	return body.Token
}

// fakeCatalog stands in for the upstream catalog client in API tests.
type fakeCatalog struct {
	searchCalls int
	volumeCalls int
	results     *domain.SearchResults
	result      *domain.SearchResult
	err         error
}

func (f *fakeCatalog) BuildSearchURL(query string, maxResults, startIndex int) string {
	return fmt.Sprintf("https://upstream.test/volumes?maxResults=%d&q=%s&startIndex=%d",
		maxResults, url.QueryEscape(query), startIndex)
}

func (f *fakeCatalog) Search(_ context.Context, query string, _, _ int) (*domain.SearchResults, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.results != nil {
		return f.results, nil
	}
	return &domain.SearchResults{
		Books: []domain.SearchResult{{
			ID:      "vol-1",
			Title:   "The Way of Kings",
			Authors: "Brandon Sanderson",
			Series:  "The Stormlight Archive",
		}},
		TotalItems: 1,
		Query:      query,
	}, nil
}

func (f *fakeCatalog) GetVolume(_ context.Context, volumeID string) (*domain.SearchResult, error) {
	f.volumeCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &domain.SearchResult{
		ID:      volumeID,
		Title:   "The Way of Kings",
		Authors: "Brandon Sanderson",
		Series:  "The Stormlight Archive",
		ISBN:    "9780765326355",
	}, nil
}

func (f *fakeCatalog) Close() {}
