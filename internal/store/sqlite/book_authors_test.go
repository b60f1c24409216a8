package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/alawler14/Bibliotheca/internal/store"
)

func TestLinkBookAuthor_OrdersAuthors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book, err := s.EnsureBook(ctx, makeTestBook("vol-order", "Ordered Authors"))
	if err != nil {
		t.Fatalf("EnsureBook: %v", err)
	}

	names := []string{"First Author", "Second Author", "Third Author"}
	authorIDs := make([]string, len(names))
	for i, name := range names {
		a, err := s.EnsureAuthor(ctx, name)
		if err != nil {
			t.Fatalf("EnsureAuthor(%q): %v", name, err)
		}
		authorIDs[i] = a.ID
	}

	// Link in shuffled order; reads must honor author_order.
	for _, link := range []struct {
		idx   int
		order int
	}{{2, 3}, {0, 1}, {1, 2}} {
		if err := s.LinkBookAuthor(ctx, book.ID, authorIDs[link.idx], link.order); err != nil {
			t.Fatalf("LinkBookAuthor(order %d): %v", link.order, err)
		}
	}

	got, err := s.bookAuthorNames(ctx, book.ID)
	if err != nil {
		t.Fatalf("bookAuthorNames: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d author names, want 3", len(got))
	}
	for i, name := range names {
		if got[i] != name {
			t.Errorf("authors[%d]: got %q, want %q", i, got[i], name)
		}
	}
}

func TestLinkBookAuthor_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book, err := s.EnsureBook(ctx, makeTestBook("vol-relink", "Relinked"))
	if err != nil {
		t.Fatalf("EnsureBook: %v", err)
	}
	author, err := s.EnsureAuthor(ctx, "Becky Chambers")
	if err != nil {
		t.Fatalf("EnsureAuthor: %v", err)
	}

	if err := s.LinkBookAuthor(ctx, book.ID, author.ID, 1); err != nil {
		t.Fatalf("LinkBookAuthor: %v", err)
	}
	// Relinking the same pair is a no-op, even with a different order.
	if err := s.LinkBookAuthor(ctx, book.ID, author.ID, 5); err != nil {
		t.Fatalf("LinkBookAuthor relink: %v", err)
	}

	var n, order int
	err = s.db.QueryRow(
		"SELECT COUNT(*), MAX(author_order) FROM book_authors WHERE book_id = ?",
		book.ID).Scan(&n, &order)
	if err != nil {
		t.Fatalf("count links: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 link row, got %d", n)
	}
	if order != 1 {
		t.Errorf("author_order: got %d, want 1 (original kept)", order)
	}
}

func TestLinkBookAuthor_RejectsNonPositiveOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book, err := s.EnsureBook(ctx, makeTestBook("vol-badorder", "Bad Order"))
	if err != nil {
		t.Fatalf("EnsureBook: %v", err)
	}
	author, err := s.EnsureAuthor(ctx, "Nobody Yet")
	if err != nil {
		t.Fatalf("EnsureAuthor: %v", err)
	}

	for _, order := range []int{0, -1} {
		err := s.LinkBookAuthor(ctx, book.ID, author.ID, order)
		if err == nil {
			t.Fatalf("LinkBookAuthor(order %d): expected error, got nil", order)
		}
		var storeErr *store.Error
		if !errors.As(err, &storeErr) {
			t.Fatalf("LinkBookAuthor(order %d): expected *store.Error, got %T: %v", order, err, err)
		}
		if storeErr.Code != store.ErrInvalidInput.Code {
			t.Errorf("LinkBookAuthor(order %d): expected status %d, got %d", order, store.ErrInvalidInput.Code, storeErr.Code)
		}
	}
}

func TestAuthorNamesByBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	withAuthors, err := s.EnsureBook(ctx, makeTestBook("vol-a", "Has Authors"))
	if err != nil {
		t.Fatalf("EnsureBook: %v", err)
	}
	without, err := s.EnsureBook(ctx, makeTestBook("vol-b", "No Authors"))
	if err != nil {
		t.Fatalf("EnsureBook: %v", err)
	}

	a1, err := s.EnsureAuthor(ctx, "James S. A. Corey")
	if err != nil {
		t.Fatalf("EnsureAuthor: %v", err)
	}
	if err := s.LinkBookAuthor(ctx, withAuthors.ID, a1.ID, 1); err != nil {
		t.Fatalf("LinkBookAuthor: %v", err)
	}

	names, err := s.authorNamesByBook(ctx, []string{withAuthors.ID, without.ID})
	if err != nil {
		t.Fatalf("authorNamesByBook: %v", err)
	}

	if got := names[withAuthors.ID]; len(got) != 1 || got[0] != "James S. A. Corey" {
		t.Errorf("names[%s]: got %v, want [James S. A. Corey]", withAuthors.ID, got)
	}
	// Books with no linked authors are simply absent.
	if _, ok := names[without.ID]; ok {
		t.Errorf("names[%s]: expected no entry", without.ID)
	}
}

func TestAuthorNamesByBook_EmptyInput(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	names, err := s.authorNamesByBook(ctx, nil)
	if err != nil {
		t.Fatalf("authorNamesByBook: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty map, got %v", names)
	}
}

func TestLinkBookAuthor_CascadeOnBookDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book, err := s.EnsureBook(ctx, makeTestBook("vol-cascade", "Doomed"))
	if err != nil {
		t.Fatalf("EnsureBook: %v", err)
	}
	author, err := s.EnsureAuthor(ctx, "Surviving Author")
	if err != nil {
		t.Fatalf("EnsureAuthor: %v", err)
	}
	if err := s.LinkBookAuthor(ctx, book.ID, author.ID, 1); err != nil {
		t.Fatalf("LinkBookAuthor: %v", err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", book.ID); err != nil {
		t.Fatalf("delete book: %v", err)
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM book_authors WHERE book_id = ?", book.ID).Scan(&n); err != nil {
		t.Fatalf("count links: %v", err)
	}
	if n != 0 {
		t.Errorf("expected links to cascade, got %d rows", n)
	}

	// The author itself survives.
	if _, err := s.GetAuthor(ctx, author.ID); err != nil {
		t.Errorf("GetAuthor after cascade: %v", err)
	}
}
