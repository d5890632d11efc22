package api

import (
	"fmt"
	"net/url"
)

// PlatformItemsCollection lists the live service offerings of a source
// platform. Archived offerings are excluded.
func (c *Client) PlatformItemsCollection(platformID string) Collection {
	return Collection{
		Name:  "service_offerings",
		URL:   fmt.Sprintf("%s/sources/%s/service_offerings", c.inventoryBase, url.PathEscape(platformID)),
		Style: CatalogStyle,
		Fixed: url.Values{ParamArchivedNil: []string{""}},
	}
}
