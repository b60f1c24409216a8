package googlebooks

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/alawler14/Bibliotheca/internal/domain"
)

const (
	// Description budgets. Search listings carry a teaser; the detail
	// view carries enough to read.
	searchDescriptionLimit = 200
	detailDescriptionLimit = 2000
)

// shapeSearchResult flattens one upstream volume into the fixed search
// result shape.
func shapeSearchResult(v *rawVolume) domain.SearchResult {
	info := &v.VolumeInfo
	return domain.SearchResult{
		ID:            v.ID,
		Title:         info.Title,
		Subtitle:      info.Subtitle,
		Authors:       flattenAuthors(info.Authors),
		Description:   truncate(cleanDescription(info.Description), searchDescriptionLimit),
		Cover:         coverURL(info.ImageLinks),
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		Series:        seriesGuess(info.Categories),
	}
}

// flattenAuthors joins the upstream author list into one display string.
func flattenAuthors(authors []string) string {
	if len(authors) == 0 {
		return "Unknown Author"
	}
	return strings.Join(authors, ", ")
}

// seriesGuess derives a series name from the categories list. The first
// category is the only series signal the search payload carries; without
// one the book is presented as standalone.
func seriesGuess(categories []string) string {
	if len(categories) > 0 {
		if name := strings.TrimSpace(categories[0]); name != "" {
			return name
		}
	}
	return domain.DefaultSeriesName
}

// coverURL picks the larger thumbnail and upgrades the scheme; Google
// Books still hands out http:// image links.
func coverURL(links *rawImageLinks) string {
	if links == nil {
		return ""
	}
	u := links.Thumbnail
	if u == "" {
		u = links.SmallThumbnail
	}
	return coerceHTTPS(u)
}

func coerceHTTPS(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

// truncate shortens s to at most limit runes, appending an ellipsis when
// anything was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// htmlTagPattern matches common HTML tags to detect if a description
// contains HTML markup.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote)[\s>/]`)

// containsHTML checks if a string appears to contain HTML markup.
func containsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// cleanDescription converts HTML descriptions to Markdown. Plain-text
// descriptions are returned unchanged, as is anything the converter
// cannot handle.
func cleanDescription(s string) string {
	if s == "" || !containsHTML(s) {
		return s
	}

	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}

	return strings.TrimSpace(markdown)
}
