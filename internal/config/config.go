package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the base name of the configuration file, without extension.
const FileName = "mwe2"

// Config represents the mwe2 tool configuration
type Config struct {
	// SearchPaths are the roots walked for *.mwe2 modules.
	SearchPaths []string `mapstructure:"search_paths"`
	// Catalog is the HCL type catalog used to check types and features.
	// Empty disables type checking.
	Catalog      string `mapstructure:"catalog"`
	Color        bool   `mapstructure:"color"`
	Verbosity    int    `mapstructure:"verbosity"`
	Parallelism  int    `mapstructure:"parallelism"`
	MaxLookahead int    `mapstructure:"max_lookahead"`
	ReportUnused bool   `mapstructure:"report_unused"`

	// File is the configuration file that was read, if any.
	File string `mapstructure:"-"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		SearchPaths:  []string{"."},
		Color:        true,
		Parallelism:  4,
		MaxLookahead: 64,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("search_paths", d.SearchPaths)
	v.SetDefault("catalog", d.Catalog)
	v.SetDefault("color", d.Color)
	v.SetDefault("verbosity", d.Verbosity)
	v.SetDefault("parallelism", d.Parallelism)
	v.SetDefault("max_lookahead", d.MaxLookahead)
	v.SetDefault("report_unused", d.ReportUnused)
}

// Load reads the configuration. With an explicit file, that file must
// exist. Otherwise mwe2.yaml is looked up in dirs (the current directory
// when none are given) and a missing file means defaults. MWE2_* environment
// variables override both.
func Load(file string, dirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		if len(dirs) == 0 {
			dirs = []string{"."}
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("MWE2")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	cfg.resolvePaths()
	return cfg, nil
}

// resolvePaths makes relative paths from a config file relative to the
// directory holding it.
func (c *Config) resolvePaths() {
	if c.File == "" {
		return
	}
	base := filepath.Dir(c.File)
	for i, p := range c.SearchPaths {
		if !filepath.IsAbs(p) {
			c.SearchPaths[i] = filepath.Join(base, p)
		}
	}
	if c.Catalog != "" && !filepath.IsAbs(c.Catalog) {
		c.Catalog = filepath.Join(base, c.Catalog)
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if len(cfg.SearchPaths) == 0 {
		return fmt.Errorf("search_paths must not be empty")
	}
	for _, p := range cfg.SearchPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("search_paths must not contain empty entries")
		}
	}
	if cfg.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got: %d", cfg.Parallelism)
	}
	if cfg.MaxLookahead < 2 {
		return fmt.Errorf("max_lookahead must be at least 2, got: %d", cfg.MaxLookahead)
	}
	if cfg.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got: %d", cfg.Verbosity)
	}
	return nil
}
