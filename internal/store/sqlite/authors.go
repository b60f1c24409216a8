package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alawler14/Bibliotheca/internal/domain"
	"github.com/alawler14/Bibliotheca/internal/id"
	"github.com/alawler14/Bibliotheca/internal/store"
)

// authorColumns is the ordered list of columns selected in author queries.
// Must match the scan order in scanAuthor.
const authorColumns = `id, name, google_author_id, created_at, updated_at`

// scanAuthor scans a sql.Row (or sql.Rows via its Scan method) into a domain.Author.
func scanAuthor(scanner interface{ Scan(dest ...any) error }) (*domain.Author, error) {
	var a domain.Author

	var (
		googleAuthorID sql.NullString
		createdAt      string
		updatedAt      string
	)

	err := scanner.Scan(
		&a.ID,
		&a.Name,
		&googleAuthorID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if googleAuthorID.Valid {
		a.GoogleAuthorID = googleAuthorID.String
	}

	return &a, nil
}

// EnsureAuthor finds-or-creates an author by exact name in a single
// atomic statement and returns the persisted row. An insert that
// conflicts on the unique name resolves to the existing row; the
// conflict clause rewrites name to itself solely so the statement
// returns a row either way. Correct under concurrent identical calls.
func (s *Store) EnsureAuthor(ctx context.Context, name string) (*domain.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, store.ErrInvalidInput.WithMessage("author name is required")
	}

	authorID, err := id.Generate(id.PrefixAuthor)
	if err != nil {
		return nil, fmt.Errorf("generate author id: %w", err)
	}

	now := formatTime(time.Now())

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO authors (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET name = excluded.name
		RETURNING `+authorColumns,
		authorID, name, now, now,
	)

	a, err := scanAuthor(row)
	if err != nil {
		return nil, fmt.Errorf("ensure author: %w", err)
	}
	return a, nil
}

// GetAuthor retrieves an author by ID.
// Returns store.ErrNotFound if the author does not exist.
func (s *Store) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE id = ?`, id)

	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
