package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alawler14/Bibliotheca/internal/domain"
	domainerrors "github.com/alawler14/Bibliotheca/internal/errors"
	"github.com/alawler14/Bibliotheca/internal/normalize"
	"github.com/alawler14/Bibliotheca/internal/store"
	"github.com/alawler14/Bibliotheca/internal/validation"
)

// TrackingService manages a user's release subscriptions: books,
// authors, and series. Book tracking runs the find-or-create flow that
// lazily builds the catalog from client-supplied search metadata.
type TrackingService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTrackingService creates a new tracking service.
func NewTrackingService(
	store store.Store,
	validator *validation.Validator,
	logger *slog.Logger,
) *TrackingService {
	return &TrackingService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// TrackBookRequest carries the metadata the client captured from a
// search result. The server trusts it as-is rather than re-fetching
// from the provider.
type TrackBookRequest struct {
	GoogleBooksID string   `json:"googleBooksId" validate:"required"`
	Title         string   `json:"title" validate:"required,max=500"`
	Authors       []string `json:"authors,omitempty" validate:"omitempty,max=20,dive,max=200"`
	Subtitle      string   `json:"subtitle,omitempty" validate:"omitempty,max=500"`
	Description   string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Cover         string   `json:"cover,omitempty" validate:"omitempty,url"`
	PublishedDate string   `json:"publishedDate,omitempty" validate:"omitempty,max=10"`
	ReleaseDate   string   `json:"releaseDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PageCount     int      `json:"pageCount,omitempty" validate:"omitempty,gte=0"`
	ISBN          string   `json:"isbn,omitempty" validate:"omitempty,max=17"`
	Series        string   `json:"series,omitempty" validate:"omitempty,max=200"`
}

// TrackAuthorRequest subscribes the caller to an author by name.
type TrackAuthorRequest struct {
	AuthorName string `json:"authorName" validate:"required,max=200"`
}

// TrackSeriesRequest subscribes the caller to a series by name.
type TrackSeriesRequest struct {
	SeriesName  string `json:"seriesName" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// TrackedItems aggregates everything a user tracks, as returned by the
// tracking list endpoint. All three slices are always non-nil.
type TrackedItems struct {
	Books   []*domain.TrackedBook   `json:"books"`
	Authors []*domain.TrackedAuthor `json:"authors"`
	Series  []*domain.TrackedSeries `json:"series"`
}

// TrackBook ensures the book and its authors exist, links them in the
// supplied order, resolves the series reference, and subscribes the
// user. Each ensure step is individually atomic; there is no wrapping
// transaction, so a failure partway leaves earlier steps in place.
func (s *TrackingService) TrackBook(ctx context.Context, userID string, req TrackBookRequest) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	book := &domain.Book{
		GoogleBooksID: req.GoogleBooksID,
		Title:         normalize.Name(req.Title),
		Subtitle:      normalize.Name(req.Subtitle),
		Description:   req.Description,
		CoverURL:      req.Cover,
		PublishedDate: req.PublishedDate,
		ReleaseDate:   req.ReleaseDate,
		PageCount:     req.PageCount,
		ISBN:          req.ISBN,
	}
	book.Released = book.ReleasedAsOf(time.Now())

	book, err := s.store.EnsureBook(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("ensure book: %w", err)
	}

	// Link authors in the order the client supplied them. author_order
	// is 1-based. Blank names are skipped without disturbing the
	// positions of the names around them.
	for i, name := range req.Authors {
		name = normalize.Name(name)
		if name == "" {
			continue
		}

		author, err := s.store.EnsureAuthor(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("ensure author %q: %w", name, err)
		}

		if err := s.store.LinkBookAuthor(ctx, book.ID, author.ID, i+1); err != nil {
			return nil, fmt.Errorf("link author %q: %w", name, err)
		}
	}

	// A real series name gets a series row and pins the book to it. The
	// default guess applied by the search shaper never creates one.
	if series := normalize.Name(req.Series); series != "" && series != domain.DefaultSeriesName {
		sr, err := s.store.EnsureSeries(ctx, series, "")
		if err != nil {
			return nil, fmt.Errorf("ensure series %q: %w", series, err)
		}
		if err := s.store.SetBookSeries(ctx, book.ID, sr.ID); err != nil {
			return nil, fmt.Errorf("set book series: %w", err)
		}
	}

	if err := s.store.TrackBook(ctx, userID, book.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("track book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book tracked",
			"user_id", userID,
			"book_id", book.ID,
			"title", book.Title,
		)
	}

	return book, nil
}

// TrackAuthor finds-or-creates the named author and subscribes the user.
func (s *TrackingService) TrackAuthor(ctx context.Context, userID string, req TrackAuthorRequest) (*domain.Author, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	author, err := s.store.EnsureAuthor(ctx, normalize.Name(req.AuthorName))
	if err != nil {
		return nil, fmt.Errorf("ensure author: %w", err)
	}

	if err := s.store.TrackAuthor(ctx, userID, author.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("track author: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Author tracked",
			"user_id", userID,
			"author_id", author.ID,
			"name", author.Name,
		)
	}

	return author, nil
}

// TrackSeries finds-or-creates the named series and subscribes the user.
func (s *TrackingService) TrackSeries(ctx context.Context, userID string, req TrackSeriesRequest) (*domain.Series, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	series, err := s.store.EnsureSeries(ctx, normalize.Name(req.SeriesName), req.Description)
	if err != nil {
		return nil, fmt.Errorf("ensure series: %w", err)
	}

	if err := s.store.TrackSeries(ctx, userID, series.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("track series: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Series tracked",
			"user_id", userID,
			"series_id", series.ID,
			"name", series.Name,
		)
	}

	return series, nil
}

// UntrackBook removes the user's book subscription. Untracking a book
// that was never tracked succeeds and changes nothing.
func (s *TrackingService) UntrackBook(ctx context.Context, userID, bookID string) error {
	if strings.TrimSpace(bookID) == "" {
		return domainerrors.Validation("Book ID is required")
	}
	if err := s.store.UntrackBook(ctx, userID, bookID); err != nil {
		return fmt.Errorf("untrack book: %w", err)
	}
	return nil
}

// UntrackAuthor removes the user's author subscription. Idempotent.
func (s *TrackingService) UntrackAuthor(ctx context.Context, userID, authorID string) error {
	if strings.TrimSpace(authorID) == "" {
		return domainerrors.Validation("Author ID is required")
	}
	if err := s.store.UntrackAuthor(ctx, userID, authorID); err != nil {
		return fmt.Errorf("untrack author: %w", err)
	}
	return nil
}

// UntrackSeries removes the user's series subscription. Idempotent.
func (s *TrackingService) UntrackSeries(ctx context.Context, userID, seriesID string) error {
	if strings.TrimSpace(seriesID) == "" {
		return domainerrors.Validation("Series ID is required")
	}
	if err := s.store.UntrackSeries(ctx, userID, seriesID); err != nil {
		return fmt.Errorf("untrack series: %w", err)
	}
	return nil
}

// GetTrackedAll returns everything the user tracks, with books ordered
// by release date (unknown dates last) and authors/series by name.
func (s *TrackingService) GetTrackedAll(ctx context.Context, userID string) (*TrackedItems, error) {
	books, err := s.store.ListTrackedBooks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tracked books: %w", err)
	}

	authors, err := s.store.ListTrackedAuthors(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tracked authors: %w", err)
	}

	series, err := s.store.ListTrackedSeries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tracked series: %w", err)
	}

	// The stored released flag is a snapshot from track time; dates pass
	// while rows sit still, so recompute it against the clock.
	now := time.Now()
	for _, b := range books {
		b.Released = b.ReleasedAsOf(now)
	}

	return &TrackedItems{
		Books:   books,
		Authors: authors,
		Series:  series,
	}, nil
}

// Calendar returns the user's tracked releases falling inside the given
// calendar year, ascending by date. Books without a known release date
// never appear.
func (s *TrackingService) Calendar(ctx context.Context, userID string, year int) ([]*domain.Release, error) {
	if year < 1000 || year > 9999 {
		return nil, domainerrors.Validation("Year must be a four-digit number")
	}

	releases, err := s.store.ListYearReleases(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("list year releases: %w", err)
	}

	now := time.Now()
	for _, r := range releases {
		r.Released = r.ReleasedAsOf(now)
	}

	return releases, nil
}
