package domain

// SearchResult is one shaped item from the upstream book search: a fixed
// field set the frontend can render without knowing the provider's schema.
// Authors are flattened to a single display string; the tracking flow
// sends them back split into a list.
type SearchResult struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle,omitempty"`
	Authors       string `json:"authors"`
	Description   string `json:"description,omitempty"`
	Cover         string `json:"cover,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	PageCount     int    `json:"pageCount,omitempty"`
	Series        string `json:"series"`
	ISBN          string `json:"isbn,omitempty"`
}

// SearchResults is a shaped upstream search page. This is the unit the
// search cache stores: a hit is returned to the client verbatim.
type SearchResults struct {
	Books      []SearchResult `json:"books"`
	TotalItems int            `json:"totalItems"`
	Query      string         `json:"query"`
}
