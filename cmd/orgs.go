package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/client"
)

// fatalIf prints a diagnostic and exits for fatal subcommand errors.
func fatalIf(err error, msg string) {
	if err == nil {
		return
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Printf("%s: %s\n", msg, apiErr.Message)
	} else {
		fmt.Printf("%s: %v\n", msg, err)
	}
	os.Exit(1)
}

// Helper to initialize the dashboard client from configuration.
func setupDashboardClient() *client.DashboardClient {
	key := viper.GetString("api_key")
	if key == "" {
		fmt.Println("Error: No API key configured. Set MERAKI_DASHBOARD_API_KEY or pass --apikey to 'collect'.")
		os.Exit(1)
	}
	return client.New(client.ClientConfig{APIKey: key})
}

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List accessible organizations",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupDashboardClient()

		orgs, err := api.GetOrganizations()
		fatalIf(err, "Error fetching organizations")

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(orgs); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tURL")
		fmt.Fprintln(w, "--\t----\t---")

		for _, org := range orgs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", org.ID, org.Name, org.URL)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(orgsCmd)
}
