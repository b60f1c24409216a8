package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alawler14/Bibliotheca/internal/domain"
	"github.com/alawler14/Bibliotheca/internal/store"
)

// trackError maps constraint failures on tracked_* inserts. A foreign
// key failure means the user or target row is gone.
func trackError(err error, what string) error {
	if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return store.ErrNotFound
	}
	return fmt.Errorf("%s: %w", what, err)
}

// TrackBook subscribes a user to a book's release. Tracking an
// already-tracked book is a no-op success.
// Returns store.ErrNotFound if the user or book does not exist.
func (s *Store) TrackBook(ctx context.Context, userID, bookID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO tracked_books (user_id, book_id, tracked_at)
		VALUES (?, ?, ?)`,
		userID, bookID, formatTime(time.Now()),
	)
	if err != nil {
		return trackError(err, "track book")
	}
	return nil
}

// UntrackBook removes a user's book subscription. Untracking a book
// that was never tracked succeeds and changes nothing.
func (s *Store) UntrackBook(ctx context.Context, userID, bookID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tracked_books WHERE user_id = ? AND book_id = ?`,
		userID, bookID)
	if err != nil {
		return fmt.Errorf("untrack book: %w", err)
	}
	return nil
}

// TrackAuthor subscribes a user to an author's releases. Idempotent.
// Returns store.ErrNotFound if the user or author does not exist.
func (s *Store) TrackAuthor(ctx context.Context, userID, authorID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO tracked_authors (user_id, author_id, tracked_at)
		VALUES (?, ?, ?)`,
		userID, authorID, formatTime(time.Now()),
	)
	if err != nil {
		return trackError(err, "track author")
	}
	return nil
}

// UntrackAuthor removes a user's author subscription. Idempotent.
func (s *Store) UntrackAuthor(ctx context.Context, userID, authorID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tracked_authors WHERE user_id = ? AND author_id = ?`,
		userID, authorID)
	if err != nil {
		return fmt.Errorf("untrack author: %w", err)
	}
	return nil
}

// TrackSeries subscribes a user to a series' releases. Idempotent.
// Returns store.ErrNotFound if the user or series does not exist.
func (s *Store) TrackSeries(ctx context.Context, userID, seriesID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO tracked_series (user_id, series_id, tracked_at)
		VALUES (?, ?, ?)`,
		userID, seriesID, formatTime(time.Now()),
	)
	if err != nil {
		return trackError(err, "track series")
	}
	return nil
}

// UntrackSeries removes a user's series subscription. Idempotent.
func (s *Store) UntrackSeries(ctx context.Context, userID, seriesID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tracked_series WHERE user_id = ? AND series_id = ?`,
		userID, seriesID)
	if err != nil {
		return fmt.Errorf("untrack series: %w", err)
	}
	return nil
}

// scanTrackedBook scans a joined tracked_books row: the book columns
// (bookColumns order) followed by tracked_at and notify.
func scanTrackedBook(scanner interface{ Scan(dest ...any) error }) (*domain.TrackedBook, error) {
	var tb domain.TrackedBook

	var (
		googleBooksID sql.NullString
		subtitle      sql.NullString
		description   sql.NullString
		coverURL      sql.NullString
		publishedDate sql.NullString
		releaseDate   sql.NullString
		pageCount     sql.NullInt64
		isbn          sql.NullString
		released      int
		seriesID      sql.NullString
		createdAt     string
		updatedAt     string
		seriesName    sql.NullString
		trackedAt     string
		notify        int
	)

	err := scanner.Scan(
		&tb.ID,
		&googleBooksID,
		&tb.Title,
		&subtitle,
		&description,
		&coverURL,
		&publishedDate,
		&releaseDate,
		&pageCount,
		&isbn,
		&released,
		&seriesID,
		&createdAt,
		&updatedAt,
		&seriesName,
		&trackedAt,
		&notify,
	)
	if err != nil {
		return nil, err
	}

	tb.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	tb.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	tb.TrackedAt, err = parseTime(trackedAt)
	if err != nil {
		return nil, err
	}

	if googleBooksID.Valid {
		tb.GoogleBooksID = googleBooksID.String
	}
	if subtitle.Valid {
		tb.Subtitle = subtitle.String
	}
	if description.Valid {
		tb.Description = description.String
	}
	if coverURL.Valid {
		tb.CoverURL = coverURL.String
	}
	if publishedDate.Valid {
		tb.PublishedDate = publishedDate.String
	}
	if releaseDate.Valid {
		tb.ReleaseDate = releaseDate.String
	}
	if isbn.Valid {
		tb.ISBN = isbn.String
	}
	if pageCount.Valid {
		tb.PageCount = int(pageCount.Int64)
	}
	if seriesID.Valid {
		tb.SeriesID = seriesID.String
	}
	if seriesName.Valid {
		tb.SeriesName = seriesName.String
	}

	tb.Released = released != 0
	tb.Notify = notify != 0

	return &tb, nil
}

// ListTrackedBooks returns a user's tracked books with series names and
// ordered author names attached, sorted by release date ascending with
// unknown dates last.
func (s *Store) ListTrackedBooks(ctx context.Context, userID string) ([]*domain.TrackedBook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+bookColumns+`, tb.tracked_at, tb.notify
		FROM tracked_books tb
		JOIN books b ON b.id = tb.book_id
		LEFT JOIN series s ON s.id = b.series_id
		WHERE tb.user_id = ?
		ORDER BY b.release_date IS NULL, b.release_date ASC, b.title ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query tracked books: %w", err)
	}
	defer rows.Close()

	var tracked []*domain.TrackedBook
	for rows.Next() {
		tb, err := scanTrackedBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tracked book: %w", err)
		}
		tracked = append(tracked, tb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach author names in one batched query.
	bookIDs := make([]string, len(tracked))
	for i, tb := range tracked {
		bookIDs[i] = tb.ID
	}
	names, err := s.authorNamesByBook(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	for _, tb := range tracked {
		tb.Authors = names[tb.ID]
	}

	// Ensure the list marshals as an array, never null.
	if tracked == nil {
		tracked = []*domain.TrackedBook{}
	}

	return tracked, nil
}

// ListTrackedAuthors returns a user's tracked authors ordered by name.
func (s *Store) ListTrackedAuthors(ctx context.Context, userID string) ([]*domain.TrackedAuthor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, a.google_author_id, a.created_at, a.updated_at,
			ta.tracked_at, ta.notify
		FROM tracked_authors ta
		JOIN authors a ON a.id = ta.author_id
		WHERE ta.user_id = ?
		ORDER BY a.name COLLATE NOCASE ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query tracked authors: %w", err)
	}
	defer rows.Close()

	var tracked []*domain.TrackedAuthor
	for rows.Next() {
		var (
			ta             domain.TrackedAuthor
			googleAuthorID sql.NullString
			createdAt      string
			updatedAt      string
			trackedAt      string
			notify         int
		)

		err := rows.Scan(
			&ta.ID,
			&ta.Name,
			&googleAuthorID,
			&createdAt,
			&updatedAt,
			&trackedAt,
			&notify,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tracked author: %w", err)
		}

		if ta.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if ta.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		if ta.TrackedAt, err = parseTime(trackedAt); err != nil {
			return nil, err
		}
		if googleAuthorID.Valid {
			ta.GoogleAuthorID = googleAuthorID.String
		}
		ta.Notify = notify != 0

		tracked = append(tracked, &ta)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tracked == nil {
		tracked = []*domain.TrackedAuthor{}
	}

	return tracked, nil
}

// ListTrackedSeries returns a user's tracked series ordered by name.
func (s *Store) ListTrackedSeries(ctx context.Context, userID string) ([]*domain.TrackedSeries, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sr.id, sr.name, sr.description, sr.created_at, sr.updated_at,
			ts.tracked_at, ts.notify
		FROM tracked_series ts
		JOIN series sr ON sr.id = ts.series_id
		WHERE ts.user_id = ?
		ORDER BY sr.name COLLATE NOCASE ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query tracked series: %w", err)
	}
	defer rows.Close()

	var tracked []*domain.TrackedSeries
	for rows.Next() {
		var (
			ts          domain.TrackedSeries
			description sql.NullString
			createdAt   string
			updatedAt   string
			trackedAt   string
			notify      int
		)

		err := rows.Scan(
			&ts.ID,
			&ts.Name,
			&description,
			&createdAt,
			&updatedAt,
			&trackedAt,
			&notify,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tracked series: %w", err)
		}

		if ts.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if ts.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		if ts.TrackedAt, err = parseTime(trackedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			ts.Description = description.String
		}
		ts.Notify = notify != 0

		tracked = append(tracked, &ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tracked == nil {
		tracked = []*domain.TrackedSeries{}
	}

	return tracked, nil
}

// ListYearReleases returns the user's tracked books whose release date
// falls inside the given calendar year, ascending. Books with unknown
// release dates never appear.
func (s *Store) ListYearReleases(ctx context.Context, userID string, year int) ([]*domain.Release, error) {
	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-01-01", year+1)

	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.cover_url, b.release_date, b.released, s.name
		FROM tracked_books tb
		JOIN books b ON b.id = tb.book_id
		LEFT JOIN series s ON s.id = b.series_id
		WHERE tb.user_id = ? AND b.release_date >= ? AND b.release_date < ?
		ORDER BY b.release_date ASC, b.title ASC`,
		userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query year releases: %w", err)
	}
	defer rows.Close()

	var releases []*domain.Release
	for rows.Next() {
		var (
			r          domain.Release
			coverURL   sql.NullString
			released   int
			seriesName sql.NullString
		)

		err := rows.Scan(&r.BookID, &r.Title, &coverURL, &r.ReleaseDate, &released, &seriesName)
		if err != nil {
			return nil, fmt.Errorf("scan release: %w", err)
		}

		if coverURL.Valid {
			r.CoverURL = coverURL.String
		}
		if seriesName.Valid {
			r.SeriesName = seriesName.String
		}
		r.Released = released != 0

		releases = append(releases, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach author names in one batched query.
	bookIDs := make([]string, len(releases))
	for i, r := range releases {
		bookIDs[i] = r.BookID
	}
	names, err := s.authorNamesByBook(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	for _, r := range releases {
		r.Authors = names[r.BookID]
	}

	if releases == nil {
		releases = []*domain.Release{}
	}

	return releases, nil
}
