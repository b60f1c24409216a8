package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alawler14/Bibliotheca/internal/domain"
	domainerrors "github.com/alawler14/Bibliotheca/internal/errors"
	"github.com/alawler14/Bibliotheca/internal/store/sqlite"
	"github.com/alawler14/Bibliotheca/internal/validation"
)

// setupTrackingTest creates a tracking service backed by a temporary
// database.
func setupTrackingTest(t *testing.T) (*TrackingService, *sqlite.Store) {
	t.Helper()

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return NewTrackingService(s, validation.New(), nil), s
}

func TestTrackingService_TrackBook(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	nextYear := time.Now().AddDate(1, 0, 0).Format(domain.DateOnly)
	book, err := trackingService.TrackBook(ctx, user.ID, TrackBookRequest{
		GoogleBooksID: "vol-1",
		Title:         "The Winds of Winter",
		Authors:       []string{"Jane Doe", "John Roe"},
		Cover:         "https://covers.example.com/vol-1.jpg",
		ReleaseDate:   nextYear,
		Series:        "A Song of Ice and Fire",
	})
	require.NoError(t, err)
	require.NotNil(t, book)

	// The persisted book carries the supplied metadata, the ordered
	// author list, and the resolved series.
	got, err := s.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "vol-1", got.GoogleBooksID)
	assert.Equal(t, []string{"Jane Doe", "John Roe"}, got.Authors)
	assert.Equal(t, "A Song of Ice and Fire", got.SeriesName)
	assert.False(t, got.Released, "future release date should not read as released")

	tracked, err := s.ListTrackedBooks(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tracked, 1)
	assert.Equal(t, book.ID, tracked[0].ID)
}

func TestTrackingService_TrackBook_Idempotent(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	req := TrackBookRequest{
		GoogleBooksID: "vol-1",
		Title:         "The Winds of Winter",
		Authors:       []string{"Jane Doe"},
	}

	first, err := trackingService.TrackBook(ctx, user.ID, req)
	require.NoError(t, err)
	second, err := trackingService.TrackBook(ctx, user.ID, req)
	require.NoError(t, err)

	// Same upstream volume resolves to the same book row both times.
	assert.Equal(t, first.ID, second.ID)

	tracked, err := s.ListTrackedBooks(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, tracked, 1)
}

func TestTrackingService_TrackBook_ReusesAuthors(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	// Two different books by the same author.
	first, err := trackingService.TrackBook(ctx, user.ID, TrackBookRequest{
		GoogleBooksID: "vol-1",
		Title:         "Book One",
		Authors:       []string{"Jane Doe"},
	})
	require.NoError(t, err)
	second, err := trackingService.TrackBook(ctx, user.ID, TrackBookRequest{
		GoogleBooksID: "vol-2",
		Title:         "Book Two",
		Authors:       []string{"Jane Doe"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// The author row is shared, so tracking the author once reaches both.
	author, err := trackingService.TrackAuthor(ctx, user.ID, TrackAuthorRequest{AuthorName: "Jane Doe"})
	require.NoError(t, err)

	authors, err := s.ListTrackedAuthors(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, author.ID, authors[0].ID)
}

func TestTrackingService_TrackBook_SkipsBlankAuthors(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	book, err := trackingService.TrackBook(ctx, user.ID, TrackBookRequest{
		GoogleBooksID: "vol-1",
		Title:         "Anthology",
		Authors:       []string{"Jane Doe", "   ", "John Roe"},
	})
	require.NoError(t, err)

	got, err := s.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Doe", "John Roe"}, got.Authors)
}

func TestTrackingService_TrackBook_StandaloneCreatesNoSeries(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	book, err := trackingService.TrackBook(ctx, user.ID, TrackBookRequest{
		GoogleBooksID: "vol-1",
		Title:         "One-Off Novel",
		Authors:       []string{"Jane Doe"},
		Series:        "Standalone",
	})
	require.NoError(t, err)

	got, err := s.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, got.SeriesID)
	assert.Empty(t, got.SeriesName)
}

func TestTrackingService_TrackBook_ValidationErrors(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	tests := []struct {
		name      string
		req       TrackBookRequest
		wantField string
	}{
		{
			name:      "missing google books id",
			req:       TrackBookRequest{Title: "No ID"},
			wantField: "googleBooksId",
		},
		{
			name:      "missing title",
			req:       TrackBookRequest{GoogleBooksID: "vol-1"},
			wantField: "title",
		},
		{
			name: "malformed release date",
			req: TrackBookRequest{
				GoogleBooksID: "vol-1",
				Title:         "Bad Date",
				ReleaseDate:   "11/10/2026",
			},
			wantField: "releaseDate",
		},
		{
			name: "cover is not a url",
			req: TrackBookRequest{
				GoogleBooksID: "vol-1",
				Title:         "Bad Cover",
				Cover:         "not a url",
			},
			wantField: "cover",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := trackingService.TrackBook(ctx, user.ID, tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestTrackingService_TrackBook_UnknownUser(t *testing.T) {
	trackingService, _ := setupTrackingTest(t)

	_, err := trackingService.TrackBook(context.Background(), "user-gone", TrackBookRequest{
		GoogleBooksID: "vol-1",
		Title:         "Orphaned",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTrackingService_TrackAuthor_FindsOrCreates(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)
	other := createTestUser(t, s, "other@example.com", testPasswordHash)

	first, err := trackingService.TrackAuthor(ctx, user.ID, TrackAuthorRequest{AuthorName: "N. K. Jemisin"})
	require.NoError(t, err)

	// A second user tracking the same name reuses the row.
	second, err := trackingService.TrackAuthor(ctx, other.ID, TrackAuthorRequest{AuthorName: "N. K. Jemisin"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Double-tracking is a no-op success.
	_, err = trackingService.TrackAuthor(ctx, user.ID, TrackAuthorRequest{AuthorName: "N. K. Jemisin"})
	require.NoError(t, err)

	authors, err := s.ListTrackedAuthors(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestTrackingService_TrackAuthor_Validation(t *testing.T) {
	trackingService, s := setupTrackingTest(t)

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	_, err := trackingService.TrackAuthor(context.Background(), user.ID, TrackAuthorRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestTrackingService_TrackSeries(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	series, err := trackingService.TrackSeries(ctx, user.ID, TrackSeriesRequest{
		SeriesName:  "The Stormlight Archive",
		Description: "Epic fantasy on Roshar.",
	})
	require.NoError(t, err)
	assert.Equal(t, "The Stormlight Archive", series.Name)

	listed, err := s.ListTrackedSeries(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, series.ID, listed[0].ID)
}

func TestTrackingService_Untrack(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	book, err := trackingService.TrackBook(ctx, user.ID, TrackBookRequest{
		GoogleBooksID: "vol-1",
		Title:         "Tracked Then Dropped",
	})
	require.NoError(t, err)

	require.NoError(t, trackingService.UntrackBook(ctx, user.ID, book.ID))

	tracked, err := s.ListTrackedBooks(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, tracked)
}

func TestTrackingService_Untrack_NeverTracked(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	// Untracking something never tracked succeeds and changes nothing.
	assert.NoError(t, trackingService.UntrackBook(ctx, user.ID, "book-unknown"))
	assert.NoError(t, trackingService.UntrackAuthor(ctx, user.ID, "author-unknown"))
	assert.NoError(t, trackingService.UntrackSeries(ctx, user.ID, "series-unknown"))
}

func TestTrackingService_Untrack_EmptyID(t *testing.T) {
	trackingService, _ := setupTrackingTest(t)
	ctx := context.Background()

	assert.ErrorIs(t, trackingService.UntrackBook(ctx, "user-1", ""), domainerrors.ErrValidation)
	assert.ErrorIs(t, trackingService.UntrackAuthor(ctx, "user-1", " "), domainerrors.ErrValidation)
	assert.ErrorIs(t, trackingService.UntrackSeries(ctx, "user-1", ""), domainerrors.ErrValidation)
}

func TestTrackingService_GetTrackedAll(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	_, err := trackingService.TrackBook(ctx, user.ID, TrackBookRequest{
		GoogleBooksID: "vol-1",
		Title:         "Tracked Book",
		Authors:       []string{"Jane Doe"},
	})
	require.NoError(t, err)
	_, err = trackingService.TrackAuthor(ctx, user.ID, TrackAuthorRequest{AuthorName: "John Roe"})
	require.NoError(t, err)
	_, err = trackingService.TrackSeries(ctx, user.ID, TrackSeriesRequest{SeriesName: "The Chronicle"})
	require.NoError(t, err)

	all, err := trackingService.GetTrackedAll(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, all.Books, 1)
	assert.Len(t, all.Authors, 1)
	assert.Len(t, all.Series, 1)
}

func TestTrackingService_GetTrackedAll_RefreshesReleased(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	// Persist a book whose date has passed but whose stored flag says
	// otherwise, as if it had been tracked before release day.
	yesterday := time.Now().AddDate(0, 0, -1).Format(domain.DateOnly)
	stale := &domain.Book{
		GoogleBooksID: "vol-stale",
		Title:         "Already Out",
		ReleaseDate:   yesterday,
		Released:      false,
	}
	book, err := s.EnsureBook(ctx, stale)
	require.NoError(t, err)
	require.NoError(t, s.TrackBook(ctx, user.ID, book.ID))

	all, err := trackingService.GetTrackedAll(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, all.Books, 1)
	assert.True(t, all.Books[0].Released, "passed release date should read as released")
}

func TestTrackingService_Calendar_RefreshesReleased(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	year := time.Now().Year()
	yesterday := time.Now().AddDate(0, 0, -1).Format(domain.DateOnly)
	if time.Now().AddDate(0, 0, -1).Year() != year {
		t.Skip("no yesterday inside the current calendar year")
	}

	book, err := s.EnsureBook(ctx, &domain.Book{
		GoogleBooksID: "vol-stale",
		Title:         "Already Out",
		ReleaseDate:   yesterday,
		Released:      false,
	})
	require.NoError(t, err)
	require.NoError(t, s.TrackBook(ctx, user.ID, book.ID))

	releases, err := trackingService.Calendar(ctx, user.ID, year)
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.True(t, releases[0].Released)
}

func TestTrackingService_GetTrackedAll_EmptyIsNotNil(t *testing.T) {
	trackingService, s := setupTrackingTest(t)

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	all, err := trackingService.GetTrackedAll(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, all.Books)
	assert.NotNil(t, all.Authors)
	assert.NotNil(t, all.Series)
	assert.Empty(t, all.Books)
	assert.Empty(t, all.Authors)
	assert.Empty(t, all.Series)
}

func TestTrackingService_Calendar(t *testing.T) {
	trackingService, s := setupTrackingTest(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reader@example.com", testPasswordHash)

	seed := []struct {
		volume  string
		title   string
		release string
	}{
		{"vol-1", "Late Spring Release", "2026-05-12"},
		{"vol-2", "New Year Release", "2026-01-01"},
		{"vol-3", "Next Year Release", "2027-03-01"},
		{"vol-4", "Date Unknown", ""},
	}
	for _, b := range seed {
		_, err := trackingService.TrackBook(ctx, user.ID, TrackBookRequest{
			GoogleBooksID: b.volume,
			Title:         b.title,
			ReleaseDate:   b.release,
		})
		require.NoError(t, err)
	}

	releases, err := trackingService.Calendar(ctx, user.ID, 2026)
	require.NoError(t, err)
	require.Len(t, releases, 2)
	assert.Equal(t, "New Year Release", releases[0].Title)
	assert.Equal(t, "Late Spring Release", releases[1].Title)

	// A year with nothing tracked returns an empty, non-nil list.
	releases, err = trackingService.Calendar(ctx, user.ID, 2031)
	require.NoError(t, err)
	assert.NotNil(t, releases)
	assert.Empty(t, releases)
}

func TestTrackingService_Calendar_InvalidYear(t *testing.T) {
	trackingService, _ := setupTrackingTest(t)

	for _, year := range []int{0, -5, 99, 10000} {
		_, err := trackingService.Calendar(context.Background(), "user-1", year)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	}
}
