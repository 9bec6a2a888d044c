// Package resolver turns the set of organizations an API key can access
// into exactly one selected organization ID.
package resolver

import (
	"errors"
	"fmt"
	"io"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// ErrNoOrganizations means the API key has access to no organizations at
// all; there is nothing to collect from.
var ErrNoOrganizations = errors.New("no organizations found for this API key")

type OrgLister interface {
	GetOrganizations() ([]models.Organization, error)
}

// Chooser asks the operator to pick one of choices by exact name.
type Chooser interface {
	Choose(question string, choices []string) (string, error)
}

// Resolve lists organizations and selects one: automatically when there is
// exactly one, by prompted exact-name choice otherwise. Adapter failures
// (auth, network) and an empty organization set are fatal to the run.
func Resolve(api OrgLister, chooser Chooser, out io.Writer) (string, error) {
	orgs, err := api.GetOrganizations()
	if err != nil {
		return "", fmt.Errorf("failed to connect to Meraki dashboard: %w", err)
	}

	fmt.Fprintln(out, "Connected to Meraki dashboard!")
	fmt.Fprintf(out, "Found %d organization(s).\n", len(orgs))

	if len(orgs) == 0 {
		return "", ErrNoOrganizations
	}

	if len(orgs) == 1 {
		fmt.Fprintf(out, "Working with org: %s\n", orgs[0].Name)
		return orgs[0].ID, nil
	}

	fmt.Fprintln(out, "Available organizations:")
	names := make([]string, 0, len(orgs))
	for _, org := range orgs {
		fmt.Fprintf(out, "- %s\n", org.Name)
		names = append(names, org.Name)
	}

	selection, err := chooser.Choose("Which organization should we use?", names)
	if err != nil {
		return "", err
	}

	for _, org := range orgs {
		if org.Name == selection {
			return org.ID, nil
		}
	}

	// Choose only returns members of names, so this is unreachable.
	return "", fmt.Errorf("organization %q not found", selection)
}
