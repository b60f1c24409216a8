package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/alawler14/Bibliotheca/internal/domain"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        searchPath,
		Summary:     "Search books",
		Description: "Proxies the upstream catalog with a one-hour response cache. Gated by the per-client daily quota; quota state is reported in the X-RateLimit headers.",
		Tags:        []string{"Books"},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/books/{id}",
		Summary:     "Book details",
		Description: "Fetches a single volume from the upstream catalog. Details are never cached.",
		Tags:        []string{"Books"},
	}, s.handleGetBook)
}

// === DTOs ===

// SearchBooksInput contains the search query and pagination parameters.
type SearchBooksInput struct {
	Query      string `query:"query" doc:"Free-text search query"`
	MaxResults int    `query:"maxResults" doc:"Maximum results per page (1-40, default 20)"`
	StartIndex int    `query:"startIndex" doc:"Pagination offset (default 0)"`
}

// SearchBooksOutput wraps the shaped search results.
type SearchBooksOutput struct {
	Body domain.SearchResults
}

// BookDetailInput identifies the volume to fetch.
type BookDetailInput struct {
	ID string `path:"id" doc:"Upstream volume ID"`
}

// BookDetailOutput wraps a single shaped volume.
type BookDetailOutput struct {
	Body domain.SearchResult
}

// === Handlers ===

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*SearchBooksOutput, error) {
	results, err := s.services.Search.Search(ctx, input.Query, input.MaxResults, input.StartIndex)
	if err != nil {
		return nil, err
	}

	return &SearchBooksOutput{Body: *results}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookDetailInput) (*BookDetailOutput, error) {
	result, err := s.services.Search.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookDetailOutput{Body: *result}, nil
}
