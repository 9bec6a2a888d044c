// Package inventory builds the per-run working set of cameras for one
// organization.
package inventory

import (
	"errors"
	"fmt"
	"io"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/collector"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// ErrNoCamerasFound means the organization has no camera devices; there is
// nothing to collect.
var ErrNoCamerasFound = errors.New("no cameras found in the organization")

type DeviceLister interface {
	GetOrganizationDevices(orgID string) ([]models.Camera, error)
}

// Build enumerates the organization's camera devices and produces one
// collection record per camera, keyed by serial.
func Build(api DeviceLister, orgID string, out io.Writer) (map[string]*collector.Record, error) {
	devices, err := api.GetOrganizationDevices(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list camera devices: %w", err)
	}

	cameras := make(map[string]*collector.Record, len(devices))
	for _, d := range devices {
		cameras[d.Serial] = &collector.Record{
			Serial: d.Serial,
			Name:   d.Name,
		}
	}

	fmt.Fprintf(out, "Found %d camera(s) in the organization.\n", len(cameras))

	if len(cameras) == 0 {
		return nil, ErrNoCamerasFound
	}

	return cameras, nil
}
