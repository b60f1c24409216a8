package domain

import "time"

// TrackedBook is a book joined with the caller's tracking record.
type TrackedBook struct {
	Book
	TrackedAt time.Time `json:"trackedAt"`
	Notify    bool      `json:"notify"`
}

// TrackedAuthor is an author joined with the caller's tracking record.
type TrackedAuthor struct {
	Author
	TrackedAt time.Time `json:"trackedAt"`
	Notify    bool      `json:"notify"`
}

// TrackedSeries is a series joined with the caller's tracking record.
type TrackedSeries struct {
	Series
	TrackedAt time.Time `json:"trackedAt"`
	Notify    bool      `json:"notify"`
}

// Release is one entry in a user's release calendar: a tracked book with
// a known release date, flattened for display.
type Release struct {
	BookID      string   `json:"bookId"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	CoverURL    string   `json:"cover,omitempty"`
	ReleaseDate string   `json:"releaseDate"`
	SeriesName  string   `json:"seriesName,omitempty"`
	Released    bool     `json:"released"`
}

// ReleasedAsOf reports whether the release date has passed as of the
// given instant.
func (r *Release) ReleasedAsOf(now time.Time) bool {
	return releasedAsOf(r.ReleaseDate, now)
}
