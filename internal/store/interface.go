// Package store defines the persistence interface for the Bibliotheca server.
package store

import (
	"context"

	"github.com/alawler14/Bibliotheca/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Books. EnsureBook finds-or-creates by google_books_id in a single
	// atomic statement and returns the persisted row either way.
	EnsureBook(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	SetBookSeries(ctx context.Context, bookID, seriesID string) error

	// Authors
	EnsureAuthor(ctx context.Context, name string) (*domain.Author, error)
	GetAuthor(ctx context.Context, id string) (*domain.Author, error)
	LinkBookAuthor(ctx context.Context, bookID, authorID string, order int) error

	// Series
	EnsureSeries(ctx context.Context, name, description string) (*domain.Series, error)
	GetSeries(ctx context.Context, id string) (*domain.Series, error)

	// Tracking. Track operations are idempotent; untrack of an
	// untracked pair succeeds and changes nothing.
	TrackBook(ctx context.Context, userID, bookID string) error
	UntrackBook(ctx context.Context, userID, bookID string) error
	TrackAuthor(ctx context.Context, userID, authorID string) error
	UntrackAuthor(ctx context.Context, userID, authorID string) error
	TrackSeries(ctx context.Context, userID, seriesID string) error
	UntrackSeries(ctx context.Context, userID, seriesID string) error
	ListTrackedBooks(ctx context.Context, userID string) ([]*domain.TrackedBook, error)
	ListTrackedAuthors(ctx context.Context, userID string) ([]*domain.TrackedAuthor, error)
	ListTrackedSeries(ctx context.Context, userID string) ([]*domain.TrackedSeries, error)

	// Releases
	ListYearReleases(ctx context.Context, userID string, year int) ([]*domain.Release, error)
}
