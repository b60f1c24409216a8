package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/alawler14/Bibliotheca/internal/store"
)

// LinkBookAuthor records that an author wrote a book at the given
// 1-based position in the book's author list. Re-linking an existing
// pair is a no-op.
func (s *Store) LinkBookAuthor(ctx context.Context, bookID, authorID string, order int) error {
	if order < 1 {
		return store.ErrInvalidInput.WithMessage("author order must be positive")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO book_authors (book_id, author_id, author_order)
		VALUES (?, ?, ?)`,
		bookID, authorID, order,
	)
	if err != nil {
		return fmt.Errorf("link book author: %w", err)
	}
	return nil
}

// bookAuthorNames returns a book's author names in authorship order.
func (s *Store) bookAuthorNames(ctx context.Context, bookID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.name
		FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = ?
		ORDER BY ba.author_order ASC`, bookID)
	if err != nil {
		return nil, fmt.Errorf("query book authors: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan book author: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// authorNamesByBook returns ordered author names for a batch of books
// in a single query, keyed by book ID. Books with no linked authors are
// omitted from the map.
func (s *Store) authorNamesByBook(ctx context.Context, bookIDs []string) (map[string][]string, error) {
	if len(bookIDs) == 0 {
		return make(map[string][]string), nil
	}

	placeholders := make([]string, len(bookIDs))
	args := make([]any, len(bookIDs))
	for i, bookID := range bookIDs {
		placeholders[i] = "?"
		args[i] = bookID
	}

	query := fmt.Sprintf(`
		SELECT ba.book_id, a.name
		FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id IN (%s)
		ORDER BY ba.book_id, ba.author_order ASC`,
		strings.Join(placeholders, ","),
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query book authors: %w", err)
	}
	defer rows.Close()

	names := make(map[string][]string)
	for rows.Next() {
		var bookID, name string
		if err := rows.Scan(&bookID, &name); err != nil {
			return nil, fmt.Errorf("scan book author: %w", err)
		}
		names[bookID] = append(names[bookID], name)
	}
	return names, rows.Err()
}
