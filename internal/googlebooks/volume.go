package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"

	"github.com/alawler14/Bibliotheca/internal/domain"
)

// GetVolume fetches a single volume by its upstream id and shapes it for
// the detail view: the search shape with a longer description and the
// ISBN-13 pulled from the identifier list.
func (c *Client) GetVolume(ctx context.Context, volumeID string) (*domain.SearchResult, error) {
	if volumeID == "" {
		return nil, wrapError("getVolume", volumeID, ErrBadRequest)
	}

	volumeURL := c.baseURL + volumesPath + "/" + url.PathEscape(volumeID)

	c.logger.Debug("fetching google books volume",
		"volumeId", volumeID,
	)

	body, err := c.doRequest(ctx, volumeURL)
	if err != nil {
		return nil, wrapError("getVolume", volumeID, err)
	}

	var v rawVolume
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, wrapError("getVolume", volumeID, fmt.Errorf("parse response: %w", err))
	}

	detail := shapeSearchResult(&v)
	detail.Description = truncate(cleanDescription(v.VolumeInfo.Description), detailDescriptionLimit)
	detail.ISBN = isbn13(v.VolumeInfo.IndustryIdentifiers)

	return &detail, nil
}

// isbn13 filters the identifier list for the ISBN_13 entry.
func isbn13(ids []rawIdentifier) string {
	for _, id := range ids {
		if id.Type == "ISBN_13" {
			return id.Identifier
		}
	}
	return ""
}
