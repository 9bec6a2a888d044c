package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var orgIDFlag string

var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "List camera devices in an organization",
	Example: `  mv-snapshots cameras --org 123456`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupDashboardClient()

		cams, err := api.GetOrganizationDevices(orgIDFlag)
		fatalIf(err, "Error fetching cameras")

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(cams); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SERIAL\tNAME\tMODEL\tNETWORK")
		fmt.Fprintln(w, "------\t----\t-----\t-------")

		for _, cam := range cams {
			name := cam.Name
			if name == "" {
				name = "No Name Set"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cam.Serial, name, cam.Model, cam.NetworkID)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(camerasCmd)

	camerasCmd.Flags().StringVar(&orgIDFlag, "org", "", "Organization ID")
	_ = camerasCmd.MarkFlagRequired("org")
}
