package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete provq configuration
type Config struct {
	Version   int    `json:"version" mapstructure:"version"`
	CratePath string `json:"cratePath" mapstructure:"cratePath"`

	Query   QueryConfig   `json:"query" mapstructure:"query"`
	Toon    ToonConfig    `json:"toon" mapstructure:"toon"`
	Output  OutputConfig  `json:"output" mapstructure:"output"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// QueryConfig contains traversal and site-view configuration
type QueryConfig struct {
	// MaxDepth bounds ancestry/descendants traversal; negative means
	// unlimited. Zero is a valid limit (roots only).
	MaxDepth int `json:"maxDepth" mapstructure:"maxDepth"`
	// KeyBasenames are the well-known per-site output names probed by the
	// site view. Entries containing "%s" are expanded with the site id.
	KeyBasenames []string `json:"keyBasenames" mapstructure:"keyBasenames"`
}

// ToonConfig contains defaults for the TOON encoder
type ToonConfig struct {
	Indent       int    `json:"indent" mapstructure:"indent"`
	Delimiter    string `json:"delimiter" mapstructure:"delimiter"`
	LengthMarker string `json:"lengthMarker" mapstructure:"lengthMarker"`
}

// OutputConfig contains CLI output configuration
type OutputConfig struct {
	Format string `json:"format" mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		CratePath: ".",
		Query: QueryConfig{
			MaxDepth: -1,
			KeyBasenames: []string{
				"transect_time_series.csv",
				"transect_time_series_despiked.csv",
				"transect_time_series_smoothed.csv",
				"transect_time_series_tidally_corrected.csv",
				"tides.csv",
				"%s.xlsx",
				"linear_%s.json",
			},
		},
		Toon: ToonConfig{
			Indent:       2,
			Delimiter:    ",",
			LengthMarker: "",
		},
		Output: OutputConfig{
			Format: "json",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .provq/config.json under the given
// directory, falling back to defaults when no config file exists.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("cratePath", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".provq"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .provq/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".provq")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	switch c.Output.Format {
	case "", "json", "human", "yaml", "toml", "toon":
	default:
		return &ConfigError{Field: "output.format", Message: "unknown format " + c.Output.Format}
	}
	return nil
}

// ExpandKeyBasenames substitutes the site id into templated basenames.
func (c *Config) ExpandKeyBasenames(siteID string) []string {
	out := make([]string, 0, len(c.Query.KeyBasenames))
	for _, base := range c.Query.KeyBasenames {
		if strings.Contains(base, "%s") {
			out = append(out, strings.ReplaceAll(base, "%s", siteID))
			continue
		}
		out = append(out, base)
	}
	return out
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
