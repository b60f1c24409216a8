package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/alawler14/Bibliotheca/internal/service"
)

func (s *Server) registerTrackingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "trackBook",
		Method:      http.MethodPost,
		Path:        "/tracking/books",
		Summary:     "Track a book",
		Description: "Adds a book (and its authors and series) to the catalog if needed and subscribes the caller to it. Tracking an already-tracked book succeeds.",
		Tags:        []string{"Tracking"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleTrackBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "trackAuthor",
		Method:      http.MethodPost,
		Path:        "/tracking/authors",
		Summary:     "Track an author",
		Description: "Subscribes the caller to an author by name, creating the author if needed.",
		Tags:        []string{"Tracking"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleTrackAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "trackSeries",
		Method:      http.MethodPost,
		Path:        "/tracking/series",
		Summary:     "Track a series",
		Description: "Subscribes the caller to a series by name, creating the series if needed.",
		Tags:        []string{"Tracking"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleTrackSeries)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTrackedAll",
		Method:      http.MethodGet,
		Path:        "/tracking/all",
		Summary:     "List tracked items",
		Description: "Returns everything the caller tracks: books ordered by release date, authors, and series.",
		Tags:        []string{"Tracking"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetTrackedAll)

	huma.Register(s.api, huma.Operation{
		OperationID: "untrackBook",
		Method:      http.MethodDelete,
		Path:        "/tracking/books/{bookId}",
		Summary:     "Untrack a book",
		Description: "Removes the caller's subscription to a book. Untracking a never-tracked book succeeds.",
		Tags:        []string{"Tracking"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUntrackBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "untrackAuthor",
		Method:      http.MethodDelete,
		Path:        "/tracking/authors/{authorId}",
		Summary:     "Untrack an author",
		Description: "Removes the caller's subscription to an author.",
		Tags:        []string{"Tracking"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUntrackAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "untrackSeries",
		Method:      http.MethodDelete,
		Path:        "/tracking/series/{seriesId}",
		Summary:     "Untrack a series",
		Description: "Removes the caller's subscription to a series.",
		Tags:        []string{"Tracking"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUntrackSeries)
}

// === DTOs ===

// TrackBookInput wraps the track-book request body.
type TrackBookInput struct {
	Body service.TrackBookRequest
}

// TrackAuthorInput wraps the track-author request body.
type TrackAuthorInput struct {
	Body service.TrackAuthorRequest
}

// TrackSeriesInput wraps the track-series request body.
type TrackSeriesInput struct {
	Body service.TrackSeriesRequest
}

// UntrackBookInput identifies the tracked book to remove.
type UntrackBookInput struct {
	BookID string `path:"bookId" doc:"Internal book ID"`
}

// UntrackAuthorInput identifies the tracked author to remove.
type UntrackAuthorInput struct {
	AuthorID string `path:"authorId" doc:"Internal author ID"`
}

// UntrackSeriesInput identifies the tracked series to remove.
type UntrackSeriesInput struct {
	SeriesID string `path:"seriesId" doc:"Internal series ID"`
}

// ActionResponse reports the outcome of a tracking mutation.
type ActionResponse struct {
	Success bool   `json:"success" doc:"Whether the operation succeeded"`
	Message string `json:"message" doc:"Human-readable outcome"`
}

// ActionOutput wraps the action response.
type ActionOutput struct {
	Body ActionResponse
}

// TrackedItemsOutput wraps the full tracking list.
type TrackedItemsOutput struct {
	Body service.TrackedItems
}

// === Handlers ===

func (s *Server) handleTrackBook(ctx context.Context, input *TrackBookInput) (*ActionOutput, error) {
	userID, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Tracking.TrackBook(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ActionOutput{Body: ActionResponse{
		Success: true,
		Message: "Tracking " + book.Title,
	}}, nil
}

func (s *Server) handleTrackAuthor(ctx context.Context, input *TrackAuthorInput) (*ActionOutput, error) {
	userID, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	author, err := s.services.Tracking.TrackAuthor(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ActionOutput{Body: ActionResponse{
		Success: true,
		Message: "Tracking " + author.Name,
	}}, nil
}

func (s *Server) handleTrackSeries(ctx context.Context, input *TrackSeriesInput) (*ActionOutput, error) {
	userID, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	series, err := s.services.Tracking.TrackSeries(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ActionOutput{Body: ActionResponse{
		Success: true,
		Message: "Tracking " + series.Name,
	}}, nil
}

func (s *Server) handleGetTrackedAll(ctx context.Context, _ *struct{}) (*TrackedItemsOutput, error) {
	userID, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Tracking.GetTrackedAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &TrackedItemsOutput{Body: *items}, nil
}

func (s *Server) handleUntrackBook(ctx context.Context, input *UntrackBookInput) (*ActionOutput, error) {
	userID, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tracking.UntrackBook(ctx, userID, input.BookID); err != nil {
		return nil, err
	}

	return &ActionOutput{Body: ActionResponse{
		Success: true,
		Message: "Book untracked",
	}}, nil
}

func (s *Server) handleUntrackAuthor(ctx context.Context, input *UntrackAuthorInput) (*ActionOutput, error) {
	userID, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tracking.UntrackAuthor(ctx, userID, input.AuthorID); err != nil {
		return nil, err
	}

	return &ActionOutput{Body: ActionResponse{
		Success: true,
		Message: "Author untracked",
	}}, nil
}

func (s *Server) handleUntrackSeries(ctx context.Context, input *UntrackSeriesInput) (*ActionOutput, error) {
	userID, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tracking.UntrackSeries(ctx, userID, input.SeriesID); err != nil {
		return nil, err
	}

	return &ActionOutput{Body: ActionResponse{
		Success: true,
		Message: "Series untracked",
	}}, nil
}
