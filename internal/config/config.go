package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InitConfig reads in config file and ENV variables if set. A .env file in
// the working directory is honored before the environment is read, so the
// dashboard API key can live there.
func InitConfig(cfgFile string) {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".mv-snapshots" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mv-snapshots")
	}

	viper.AutomaticEnv() // read in environment variables that match
	_ = viper.BindEnv("api_key", "MERAKI_DASHBOARD_API_KEY")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		// Config loaded successfully
	}
}

// SaveAPIKey updates the config file with the dashboard API key so later
// runs don't need to prompt for it.
func SaveAPIKey(key string) error {
	viper.Set("api_key", key)

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, ".mv-snapshots.yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
