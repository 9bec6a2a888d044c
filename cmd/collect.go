package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/client"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/collector"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/config"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/inventory"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/prompt"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/report"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/resolver"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/server"
)

// Variables to hold flag values
var (
	apiKey     string
	timeFlag   string
	outputDir  string
	outputHTML bool
	workers    int
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect snapshots from every MV camera in an organization",
	Long: `Run bulk collection of snapshots from Meraki MV cameras.

If a date & time is not specified, snapshots are collected for the current
date & time. The dashboard may return an archived frame near the requested
timestamp rather than a live one.`,
	Example: `  mv-snapshots collect -o snapshots
  mv-snapshots collect -t 2024-05-01T09:30:00Z --outputhtml`,
	Run: func(cmd *cobra.Command, args []string) {
		p := prompt.New(os.Stdin, os.Stdout)

		key := resolveAPIKey(p)

		var ts *time.Time
		if timeFlag != "" {
			parsed, err := time.Parse(time.RFC3339, timeFlag)
			if err != nil {
				fmt.Printf("Error: invalid --time value %q (want RFC3339, e.g. 2024-05-01T09:30:00Z)\n", timeFlag)
				os.Exit(1)
			}
			ts = &parsed
		}

		fmt.Println("-- Start --")
		fmt.Println("Running with the following parameters:")
		fmt.Printf("Output directory: %s\n", outputDir)
		fmt.Printf("Output HTML report: %v\n", outputHTML)
		if ts == nil {
			fmt.Println("Date / Time: Now")
		} else {
			fmt.Printf("Date / Time: %s\n", ts.Format(time.RFC3339))
		}

		api := client.New(client.ClientConfig{APIKey: key})

		// Step 1: resolve the organization to work with.
		fmt.Println("\n[Step 1] Connect to Meraki")
		orgID, err := resolver.Resolve(api, p, os.Stdout)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		// Step 2: enumerate the organization's cameras.
		fmt.Println("\n[Step 2] Collect camera serial numbers")
		cameras, err := inventory.Build(api, orgID, os.Stdout)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		// Step 3: request, wait, download.
		fmt.Println("\n[Step 3] Collect snapshots")
		result, err := collector.Collect(api, api, cameras, collector.Options{
			Timestamp: ts,
			OutputDir: outputDir,
			Workers:   workers,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if !outputHTML {
			return
		}

		// Step 4: render the report, optionally serve it.
		fmt.Println("\n[Step 4] Render web report")
		if err := report.Render(result, outputDir, "index.html"); err != nil {
			fmt.Printf("Error rendering report: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("File saved to index.html")

		serve, err := p.Confirm("Start a web server to view the report?")
		if err != nil || !serve {
			return
		}
		if err := server.Serve(server.DefaultAddr, ".", os.Stdout); err != nil {
			fmt.Printf("Web server error: %v\n", err)
			os.Exit(1)
		}
	},
}

// resolveAPIKey finds the dashboard API key: flag first, then config/env
// (MERAKI_DASHBOARD_API_KEY, .env honored), then a hidden interactive
// prompt. A prompted key is offered for persistence.
func resolveAPIKey(p *prompt.Prompter) string {
	if apiKey != "" {
		return apiKey
	}
	if key := viper.GetString("api_key"); key != "" {
		return key
	}

	key, err := p.AskSecret("Meraki dashboard API key")
	if err != nil || key == "" {
		fmt.Println("Error: no API key provided.")
		os.Exit(1)
	}

	if save, err := p.Confirm("Save the API key for future runs?"); err == nil && save {
		if err := config.SaveAPIKey(key); err != nil {
			fmt.Printf("Warning: could not save API key: %v\n", err)
		}
	}
	return key
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringVarP(&apiKey, "apikey", "k", "", "Meraki dashboard API key (env MERAKI_DASHBOARD_API_KEY)")
	collectCmd.Flags().StringVarP(&timeFlag, "time", "t", "", "Date & time to collect snapshots for (RFC3339)")
	collectCmd.Flags().StringVarP(&outputDir, "outputdir", "o", "snapshots", "Output directory")
	collectCmd.Flags().BoolVar(&outputHTML, "outputhtml", false, "Output HTML report")
	collectCmd.Flags().IntVar(&workers, "workers", 4, "Concurrent snapshot requests/downloads")
}
