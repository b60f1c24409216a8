package domain

import "time"

// DateOnly is the wire and storage layout for calendar dates.
// Release and publication dates carry no time component.
const DateOnly = "2006-01-02"

// Book represents a tracked or trackable book. Books are created lazily
// the first time any user tracks them, from metadata the client captured
// out of a search result.
type Book struct {
	ID            string `json:"id"`
	GoogleBooksID string `json:"googleBooksId,omitempty"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle,omitempty"`
	Description   string `json:"description,omitempty"`
	CoverURL      string `json:"cover,omitempty"`

	// PublishedDate and ReleaseDate are YYYY-MM-DD strings; empty means
	// unknown and sorts after every known date.
	PublishedDate string `json:"publishedDate,omitempty"`
	ReleaseDate   string `json:"releaseDate,omitempty"`

	PageCount int    `json:"pageCount,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	Released  bool   `json:"released"`

	SeriesID   string `json:"seriesId,omitempty"`
	SeriesName string `json:"seriesName,omitempty"`

	// Authors holds the book's author names in authorship order.
	Authors []string `json:"authors,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReleasedAsOf reports whether the book's release date is known and has
// passed as of the given instant. Unknown dates are never released.
func (b *Book) ReleasedAsOf(now time.Time) bool {
	return releasedAsOf(b.ReleaseDate, now)
}

func releasedAsOf(date string, now time.Time) bool {
	if date == "" {
		return false
	}
	d, err := time.Parse(DateOnly, date)
	if err != nil {
		return false
	}
	return !d.After(now)
}

// Author represents a book author. Authors are deduplicated globally by
// exact name; creation always goes through find-or-create.
type Author struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	GoogleAuthorID string    `json:"googleAuthorId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Series represents a named book series. Like authors, series names are
// globally unique and resolved through find-or-create.
type Series struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultSeriesName is the series guess applied to search results with no
// recognizable series, and the one series value that never creates a
// series row when a book is tracked.
const DefaultSeriesName = "Standalone"
