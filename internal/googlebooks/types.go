package googlebooks

// Raw API response types (internal)

type rawVolumeList struct {
	TotalItems int         `json:"totalItems"`
	Items      []rawVolume `json:"items"`
}

type rawVolume struct {
	ID         string        `json:"id"`
	VolumeInfo rawVolumeInfo `json:"volumeInfo"`
}

type rawVolumeInfo struct {
	Title               string          `json:"title"`
	Subtitle            string          `json:"subtitle"`
	Authors             []string        `json:"authors"`
	Description         string          `json:"description"`
	PublishedDate       string          `json:"publishedDate"`
	PageCount           int             `json:"pageCount"`
	Categories          []string        `json:"categories"`
	ImageLinks          *rawImageLinks  `json:"imageLinks"`
	IndustryIdentifiers []rawIdentifier `json:"industryIdentifiers"`
}

type rawImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

type rawIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}
