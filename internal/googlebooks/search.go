package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"

	"github.com/alawler14/Bibliotheca/internal/domain"
)

const volumesPath = "/volumes"

// BuildSearchURL resolves the exact upstream request URL for a search.
// The resolved URL doubles as the cache key, so the normalization done
// here (clamping, defaults, sorted encoding) defines cache identity:
// two requests normalize to the same URL exactly when they are the same
// upstream call.
func (c *Client) BuildSearchURL(query string, maxResults, startIndex int) string {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxMaxResults {
		maxResults = maxMaxResults
	}
	if startIndex < 0 {
		startIndex = 0
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("startIndex", strconv.Itoa(startIndex))

	return c.baseURL + volumesPath + "?" + params.Encode()
}

// Search fetches one page of volumes matching the query and shapes each
// item for the frontend. Pagination parameters are normalized the same
// way BuildSearchURL normalizes them.
func (c *Client) Search(ctx context.Context, query string, maxResults, startIndex int) (*domain.SearchResults, error) {
	searchURL := c.BuildSearchURL(query, maxResults, startIndex)

	c.logger.Debug("searching google books",
		"query", query,
		"url", searchURL,
	)

	body, err := c.doRequest(ctx, searchURL)
	if err != nil {
		return nil, wrapError("search", "", err)
	}

	var resp rawVolumeList
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", "", fmt.Errorf("parse response: %w", err))
	}

	results := &domain.SearchResults{
		Books:      make([]domain.SearchResult, 0, len(resp.Items)),
		TotalItems: resp.TotalItems,
		Query:      query,
	}
	for i := range resp.Items {
		results.Books = append(results.Books, shapeSearchResult(&resp.Items[i]))
	}

	c.logger.Debug("google books search results",
		"query", query,
		"count", len(results.Books),
		"total", results.TotalItems,
	)

	return results, nil
}
