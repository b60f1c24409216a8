package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alawler14/Bibliotheca/internal/domain"
	"github.com/alawler14/Bibliotheca/internal/id"
	"github.com/alawler14/Bibliotheca/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Every book read joins the series table for the display name, so the
// columns carry table aliases. Must match the scan order in scanBook.
const bookColumns = `b.id, b.google_books_id, b.title, b.subtitle, b.description,
	b.cover_url, b.published_date, b.release_date, b.page_count, b.isbn,
	b.released, b.series_id, b.created_at, b.updated_at, s.name`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

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
	)

	err := scanner.Scan(
		&b.ID,
		&googleBooksID,
		&b.Title,
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
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	// Optional strings.
	if googleBooksID.Valid {
		b.GoogleBooksID = googleBooksID.String
	}
	if subtitle.Valid {
		b.Subtitle = subtitle.String
	}
	if description.Valid {
		b.Description = description.String
	}
	if coverURL.Valid {
		b.CoverURL = coverURL.String
	}
	if publishedDate.Valid {
		b.PublishedDate = publishedDate.String
	}
	if releaseDate.Valid {
		b.ReleaseDate = releaseDate.String
	}
	if isbn.Valid {
		b.ISBN = isbn.String
	}
	if pageCount.Valid {
		b.PageCount = int(pageCount.Int64)
	}

	b.Released = released != 0

	// Series reference and joined display name.
	if seriesID.Valid {
		b.SeriesID = seriesID.String
	}
	if seriesName.Valid {
		b.SeriesName = seriesName.String
	}

	return &b, nil
}

// EnsureBook finds-or-creates a book by its Google Books volume ID in a
// single atomic statement and returns the persisted row. The conflict
// clause rewrites google_books_id to itself solely so the statement
// returns a row whether it inserted or not; an existing row's metadata
// is left alone.
func (s *Store) EnsureBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if book.GoogleBooksID == "" {
		return nil, store.ErrInvalidInput.WithMessage("book requires a google books id")
	}

	bookID := book.ID
	if bookID == "" {
		var err error
		bookID, err = id.Generate(id.PrefixBook)
		if err != nil {
			return nil, fmt.Errorf("generate book id: %w", err)
		}
	}

	now := formatTime(time.Now())

	var persistedID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO books (
			id, google_books_id, title, subtitle, description, cover_url,
			published_date, release_date, page_count, isbn, released, series_id,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(google_books_id) DO UPDATE SET google_books_id = excluded.google_books_id
		RETURNING id`,
		bookID,
		book.GoogleBooksID,
		book.Title,
		nullString(book.Subtitle),
		nullString(book.Description),
		nullString(book.CoverURL),
		nullString(book.PublishedDate),
		nullString(book.ReleaseDate),
		nullInt64(book.PageCount),
		nullString(book.ISBN),
		boolToInt(book.Released),
		nullString(book.SeriesID),
		now,
		now,
	).Scan(&persistedID)
	if err != nil {
		return nil, fmt.Errorf("ensure book: %w", err)
	}

	return s.GetBook(ctx, persistedID)
}

// GetBook retrieves a book by ID with its series name and ordered
// author names attached.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+`
		FROM books b
		LEFT JOIN series s ON s.id = b.series_id
		WHERE b.id = ?`, id)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	b.Authors, err = s.bookAuthorNames(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SetBookSeries points a book at a series. An empty seriesID clears the
// reference.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) SetBookSeries(ctx context.Context, bookID, seriesID string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books SET series_id = ?, updated_at = ? WHERE id = ?`,
		nullString(seriesID), formatTime(time.Now()), bookID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
