package fetcher

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a fetch run. All values
// originate from Viper so the fetcher can be configured via files, env
// vars, or CLI flags.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	StartYear   int
	EndYear     int
	Delay       time.Duration
	OutputDir   string
	StationFile string
	ErrorLog    string
	MetricsAddr string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:     v.GetString("noaa.base_url"),
		Timeout:     v.GetDuration("noaa.timeout"),
		StartYear:   v.GetInt("fetch.start_year"),
		EndYear:     v.GetInt("fetch.end_year"),
		Delay:       v.GetDuration("fetch.delay"),
		OutputDir:   v.GetString("fetch.output_dir"),
		StationFile: v.GetString("fetch.station_file"),
		ErrorLog:    v.GetString("fetch.error_log"),
		MetricsAddr: v.GetString("metrics.addr"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("noaa.base_url must be set")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("noaa.timeout must be > 0")
	}
	if c.StartYear <= 0 {
		return fmt.Errorf("fetch.start_year must be > 0")
	}
	if c.EndYear < c.StartYear {
		return fmt.Errorf("fetch.end_year must be >= fetch.start_year")
	}
	if c.Delay < 0 {
		return fmt.Errorf("fetch.delay must be >= 0")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("fetch.output_dir must be set")
	}
	if c.StationFile == "" {
		return fmt.Errorf("fetch.station_file must be set")
	}
	if c.ErrorLog == "" {
		return fmt.Errorf("fetch.error_log must be set")
	}
	return nil
}

// Years returns the configured year range in ascending order, inclusive.
func (c Config) Years() []int {
	years := make([]int, 0, c.EndYear-c.StartYear+1)
	for y := c.StartYear; y <= c.EndYear; y++ {
		years = append(years, y)
	}
	return years
}
