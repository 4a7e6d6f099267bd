package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/LumpsRGood/tablet-use-app/pkg/services/report"
)

// App carries the runtime configuration shared by the CLI and the server.
// Values resolve in order: config file, TABLET_-prefixed environment
// variables, defaults.
type App struct {
	Host          string  `mapstructure:"host"`
	Port          string  `mapstructure:"port"`
	MappingsPath  string  `mapstructure:"mappings_path"`
	HighThreshold float64 `mapstructure:"high_threshold"`
	MidThreshold  float64 `mapstructure:"mid_threshold"`
}

// LoadApp reads the app configuration. An empty path skips the file and
// resolves from environment and defaults only.
func LoadApp(path string) (*App, error) {
	v := viper.New()
	v.SetDefault("host", "localhost")
	v.SetDefault("port", "8080")
	v.SetDefault("mappings_path", "")
	v.SetDefault("high_threshold", 70.0)
	v.SetDefault("mid_threshold", 50.0)
	v.SetEnvPrefix("TABLET")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg App
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	return &cfg, nil
}

// ReportSettings converts the configured thresholds to report settings.
func (a *App) ReportSettings() report.Settings {
	return report.Settings{
		HighThreshold: decimal.NewFromFloat(a.HighThreshold),
		MidThreshold:  decimal.NewFromFloat(a.MidThreshold),
	}
}

// MappingRegistry builds the profile registry, file-backed when a mappings
// path is configured.
func (a *App) MappingRegistry() (Registry, error) {
	if a.MappingsPath == "" {
		return NewDefaultRegistry(), nil
	}
	return NewRegistry(a.MappingsPath)
}
