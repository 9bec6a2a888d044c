package client

import (
	"strings"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// GetOrganizationDevices lists devices in an organization, filtered to MV
// cameras. The endpoint paginates with RFC 5988 Link headers; all pages are
// fetched and merged.
func (c *DashboardClient) GetOrganizationDevices(orgID string) ([]models.Camera, error) {
	var all []models.Camera

	url := "/organizations/" + orgID + "/devices"
	first := true
	for url != "" {
		var page []models.Camera
		req := c.HTTP.R().SetResult(&page)
		if first {
			// Later pages carry the filter in the next-page URL already.
			req.SetQueryParam("productTypes[]", "camera")
		}

		resp, err := req.Get(url)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, apiError(resp)
		}

		all = append(all, page...)
		url = nextPageURL(resp.Header().Get("Link"))
		first = false
	}

	return all, nil
}

// nextPageURL extracts the rel=next target from a Link header, or "" when
// this is the last page.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		rel := strings.TrimSpace(section[1])
		if rel == "rel=next" || rel == `rel="next"` {
			return strings.Trim(strings.TrimSpace(section[0]), "<>")
		}
	}
	return ""
}
