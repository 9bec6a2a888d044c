package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/config"
)

var cfgFile string
var jsonOutput bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mv-snapshots",
	Short: "Bulk snapshot collection for Meraki MV cameras",
	Long: `Collect snapshots from every MV camera in a Meraki organization,
save them locally, and optionally render a static HTML report.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mv-snapshots.yaml)")

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}
