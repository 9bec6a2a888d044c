package client

import (
	"errors"
	"time"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// GenerateSnapshot asks the dashboard to render a snapshot for a camera.
// A nil timestamp requests a live frame; otherwise the vendor returns an
// archived frame near that instant. The returned URL is not downloadable
// immediately - rendering happens asynchronously after the request is
// accepted.
func (c *DashboardClient) GenerateSnapshot(serial string, ts *time.Time) (models.Snapshot, error) {
	var snap models.Snapshot

	req := c.HTTP.R().SetResult(&snap)
	if ts != nil {
		req.SetBody(map[string]string{"timestamp": ts.Format(time.RFC3339)})
	}

	resp, err := req.Post("/devices/" + serial + "/camera/generateSnapshot")
	if err != nil {
		return models.Snapshot{}, err
	}

	if resp.IsError() {
		return models.Snapshot{}, apiError(resp)
	}

	if snap.URL == "" {
		return models.Snapshot{}, errors.New("snapshot accepted but no URL returned")
	}

	return snap, nil
}

// FetchImage downloads the raw JPEG bytes behind a pre-signed snapshot URL.
// No dashboard auth header is sent; the URL carries its own signature.
func (c *DashboardClient) FetchImage(url string) ([]byte, error) {
	resp, err := c.raw.R().Get(url)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, apiError(resp)
	}

	if len(resp.Body()) == 0 {
		return nil, errors.New("snapshot response body is empty")
	}

	return resp.Body(), nil
}
