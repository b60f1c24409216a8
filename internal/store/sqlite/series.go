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

// seriesColumns is the ordered list of columns selected in series queries.
// Must match the scan order in scanSeries.
const seriesColumns = `id, name, description, created_at, updated_at`

// scanSeries scans a sql.Row (or sql.Rows via its Scan method) into a domain.Series.
func scanSeries(scanner interface{ Scan(dest ...any) error }) (*domain.Series, error) {
	var sr domain.Series

	var (
		description sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&sr.ID,
		&sr.Name,
		&description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sr.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sr.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		sr.Description = description.String
	}

	return &sr, nil
}

// EnsureSeries finds-or-creates a series by exact name in a single
// atomic statement and returns the persisted row, following the same
// conflict-clause discipline as EnsureAuthor. An existing row keeps its
// description.
func (s *Store) EnsureSeries(ctx context.Context, name, description string) (*domain.Series, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, store.ErrInvalidInput.WithMessage("series name is required")
	}

	seriesID, err := id.Generate(id.PrefixSeries)
	if err != nil {
		return nil, fmt.Errorf("generate series id: %w", err)
	}

	now := formatTime(time.Now())

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO series (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET name = excluded.name
		RETURNING `+seriesColumns,
		seriesID, name, nullString(description), now, now,
	)

	sr, err := scanSeries(row)
	if err != nil {
		return nil, fmt.Errorf("ensure series: %w", err)
	}
	return sr, nil
}

// GetSeries retrieves a series by ID.
// Returns store.ErrNotFound if the series does not exist.
func (s *Store) GetSeries(ctx context.Context, id string) (*domain.Series, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+seriesColumns+` FROM series WHERE id = ?`, id)

	sr, err := scanSeries(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sr, nil
}
