package client

import (
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// GetOrganizations fetches every organization the API key can access.
func (c *DashboardClient) GetOrganizations() ([]models.Organization, error) {
	var orgs []models.Organization

	resp, err := c.HTTP.R().
		SetResult(&orgs).
		Get("/organizations")

	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, apiError(resp)
	}

	return orgs, nil
}
