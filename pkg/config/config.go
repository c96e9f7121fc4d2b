// Package config loads maven-mapper settings from a YAML file, environment
// variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "maven-mapper.yaml"

// EnvPrefix prefixes environment overrides, e.g. MAVEN_MAPPER_ORIGIN_BASE_URL.
const EnvPrefix = "MAVEN_MAPPER"

// Config represents maven-mapper.yaml
type Config struct {
	Origin OriginConfig `yaml:"origin" mapstructure:"origin"`
	CSV    CSVConfig    `yaml:"csv" mapstructure:"csv"`
	Walk   WalkConfig   `yaml:"walk" mapstructure:"walk"`
	Report ReportConfig `yaml:"report" mapstructure:"report"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	LDM    LDMConfig    `yaml:"ldm" mapstructure:"ldm"`
}

// OriginConfig controls git remote resolution
type OriginConfig struct {
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	Remote        string `yaml:"remote" mapstructure:"remote"`
	SearchParents bool   `yaml:"search_parents" mapstructure:"search_parents"`
	CacheSize     int    `yaml:"cache_size" mapstructure:"cache_size"`
}

// CSVConfig holds delimited file settings
type CSVConfig struct {
	Separator string `yaml:"separator" mapstructure:"separator"`
}

// WalkConfig tunes directory traversal
type WalkConfig struct {
	ExcludeDirs     []string `yaml:"exclude_dirs" mapstructure:"exclude_dirs"`
	ExcludePatterns []string `yaml:"exclude_patterns" mapstructure:"exclude_patterns"`
	FollowSymlinks  bool     `yaml:"follow_symlinks" mapstructure:"follow_symlinks"`
}

// ReportConfig defines output settings
type ReportConfig struct {
	DependenciesFile string `yaml:"dependencies_file" mapstructure:"dependencies_file"`
	Unknown          string `yaml:"unknown" mapstructure:"unknown"`
}

// LogConfig sets the log level
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// LDMConfig configures data file collection
type LDMConfig struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Origin: OriginConfig{
			BaseURL:   "https://gitlab.grupo/",
			Remote:    "origin",
			CacheSize: 256,
		},
		CSV: CSVConfig{
			Separator: ";",
		},
		Walk: WalkConfig{
			FollowSymlinks: true,
		},
		Report: ReportConfig{
			DependenciesFile: "maven_dependencies.csv",
		},
		Log: LogConfig{
			Level: "info",
		},
		LDM: LDMConfig{
			Pattern: "*.ldm",
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
// Environment variables (and a .env file in the working directory) override
// file values.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("origin.base_url", d.Origin.BaseURL)
	v.SetDefault("origin.remote", d.Origin.Remote)
	v.SetDefault("origin.search_parents", d.Origin.SearchParents)
	v.SetDefault("origin.cache_size", d.Origin.CacheSize)
	v.SetDefault("csv.separator", d.CSV.Separator)
	v.SetDefault("walk.exclude_dirs", d.Walk.ExcludeDirs)
	v.SetDefault("walk.exclude_patterns", d.Walk.ExcludePatterns)
	v.SetDefault("walk.follow_symlinks", d.Walk.FollowSymlinks)
	v.SetDefault("report.dependencies_file", d.Report.DependenciesFile)
	v.SetDefault("report.unknown", d.Report.Unknown)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("ldm.pattern", d.LDM.Pattern)
}

// Validate checks values that cannot be used as given.
func (c *Config) Validate() error {
	if _, err := ParseSeparator(c.CSV.Separator); err != nil {
		return err
	}
	return nil
}

// Separator returns the configured column separator.
func (c *Config) Separator() rune {
	r, _ := ParseSeparator(c.CSV.Separator)
	return r
}

// ParseSeparator accepts a single character, or "tab".
func ParseSeparator(s string) (rune, error) {
	if strings.EqualFold(s, "tab") || s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid separator %q", s)
	}
	return r, nil
}

// Save writes configuration to a YAML file
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
