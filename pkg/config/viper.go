// Package config is responsible for initializing the application's configuration.
// It uses the Viper library to read settings from a config file and environment
// variables, providing a unified configuration system.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// InitConfig initializes the application's configuration using Viper.
// It sets up default values, defines configuration search paths, and enables
// reading from environment variables. This function is designed to be called
// once at application startup so that configuration is loaded and available
// to all other packages. An explicit cfgFile overrides the search paths.
func InitConfig(cfgFile string) {
	// --- Set Search Paths ---
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")                   // Current working directory
		viper.AddConfigPath("/etc/tidearchiver/")  // System-wide configuration
		viper.AddConfigPath("$HOME/.tidearchiver") // User-specific configuration
	}

	// --- Set Defaults ---
	// These mirror the parameters the NOAA datagetter endpoint expects and
	// the archive layout downstream consumers rely on.
	viper.SetDefault("noaa.base_url", "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter")
	viper.SetDefault("noaa.timeout", "60s")

	viper.SetDefault("fetch.start_year", 2025)
	viper.SetDefault("fetch.end_year", 2029)
	viper.SetDefault("fetch.delay", "2s")
	viper.SetDefault("fetch.output_dir", ".")
	viper.SetDefault("fetch.station_file", "california.json")
	viper.SetDefault("fetch.error_log", "error_log.txt")

	viper.SetDefault("metrics.addr", "")
	viper.SetDefault("log.development", false)

	// --- Environment Variables ---
	viper.SetEnvPrefix("TIDEARCHIVER") // e.g., TIDEARCHIVER_FETCH_DELAY=5s
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// --- Read Config File ---
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A real error occurred while parsing the config file. Defaults
			// and environment variables still apply, so report and continue.
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}
