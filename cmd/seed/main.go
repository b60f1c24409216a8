// Package main provides a tool to seed the database with demo tracking data.
//
// It creates a demo account and subscribes it to a handful of books,
// authors, and series, with release dates spread around the current date
// so the release calendar has something to show.
//
// Usage:
//
//	DATABASE_PATH=~/bibliotheca/bibliotheca.db go run ./cmd/seed
//	go run ./cmd/seed --email you@example.com --password some-long-password
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alawler14/Bibliotheca/internal/auth"
	"github.com/alawler14/Bibliotheca/internal/domain"
	"github.com/alawler14/Bibliotheca/internal/id"
	"github.com/alawler14/Bibliotheca/internal/service"
	"github.com/alawler14/Bibliotheca/internal/store"
	"github.com/alawler14/Bibliotheca/internal/store/sqlite"
	"github.com/alawler14/Bibliotheca/internal/validation"
)

var (
	email    = flag.String("email", "demo@example.com", "Email for the demo account")
	password = flag.String("password", "demo-password-123", "Password for the demo account")
)

// seedBook is one catalog entry to create and track. Release dates are
// expressed as month offsets from now so reruns stay relevant.
type seedBook struct {
	googleBooksID string
	title         string
	authors       []string
	series        string
	releaseIn     int // months from now; negative means already out
	unannounced   bool
	pageCount     int
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/bibliotheca/bibliotheca.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	user, err := ensureUser(ctx, s, strings.ToLower(strings.TrimSpace(*email)), *password)
	if err != nil {
		log.Fatalf("Failed to ensure demo account: %v", err)
	}

	tracking := service.NewTrackingService(s, validation.New(), nil)

	books := []seedBook{
		{
			googleBooksID: "seed-emberfall-3",
			title:         "The Last Emberfall",
			authors:       []string{"Mara Voss"},
			series:        "The Emberfall Cycle",
			releaseIn:     1,
			pageCount:     512,
		},
		{
			googleBooksID: "seed-hollow-star",
			title:         "A Hollow Star",
			authors:       []string{"Daniel Okafor"},
			releaseIn:     3,
			pageCount:     384,
		},
		{
			googleBooksID: "seed-emberfall-2",
			title:         "The Ashen Court",
			authors:       []string{"Mara Voss"},
			series:        "The Emberfall Cycle",
			releaseIn:     -2,
			pageCount:     488,
		},
		{
			googleBooksID: "seed-winds-of-winter",
			title:         "The Winds of Winter",
			authors:       []string{"George R.R. Martin"},
			series:        "A Song of Ice and Fire",
			unannounced:   true,
			pageCount:     0,
		},
		{
			googleBooksID: "seed-tide-tables",
			title:         "Tide Tables",
			authors:       []string{"June Hakala", "Peter Hakala"},
			releaseIn:     7,
			pageCount:     304,
		},
	}

	now := time.Now()
	for _, b := range books {
		req := service.TrackBookRequest{
			GoogleBooksID: b.googleBooksID,
			Title:         b.title,
			Authors:       b.authors,
			Series:        b.series,
			PageCount:     b.pageCount,
		}
		if !b.unannounced {
			req.ReleaseDate = now.AddDate(0, b.releaseIn, 0).Format(domain.DateOnly)
		}

		book, err := tracking.TrackBook(ctx, user.ID, req)
		if err != nil {
			log.Fatalf("Failed to track %q: %v", b.title, err)
		}

		when := book.ReleaseDate
		if when == "" {
			when = "unannounced"
		}
		fmt.Printf("  Tracked %q (release %s)\n", book.Title, when)
	}

	for _, name := range []string{"Mara Voss", "N.K. Jemisin"} {
		if _, err := tracking.TrackAuthor(ctx, user.ID, service.TrackAuthorRequest{AuthorName: name}); err != nil {
			log.Fatalf("Failed to track author %q: %v", name, err)
		}
		fmt.Printf("  Tracked author %s\n", name)
	}

	if _, err := tracking.TrackSeries(ctx, user.ID, service.TrackSeriesRequest{
		SeriesName:  "The Emberfall Cycle",
		Description: "Epic fantasy about a city that burns down and rebuilds itself once a generation.",
	}); err != nil {
		log.Fatalf("Failed to track series: %v", err)
	}
	fmt.Println("  Tracked series The Emberfall Cycle")

	fmt.Printf("\nDone. Log in as %s to browse the %d calendar.\n", user.Email, now.Year())
}

// ensureUser finds the account by email or creates it.
func ensureUser(ctx context.Context, s *sqlite.Store, email, password string) (*domain.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		fmt.Printf("Using existing account %s (%s)\n", email, user.ID)
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user = &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Email:        email,
		Name:         "Demo Reader",
		PasswordHash: hash,
	}
	user.InitTimestamps()

	if err := s.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("Created account %s (%s)\n", email, user.ID)
	return user, nil
}
