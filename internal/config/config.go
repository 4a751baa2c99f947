package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DOC_RECON_SOURCE_URL
const EnvPrefix = "DOC_RECON"

// Config represents the application configuration
type Config struct {
	Source     SourceConfig     `mapstructure:"source"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Output     OutputConfig     `mapstructure:"output"`
	Server     ServerConfig     `mapstructure:"server"`

	// ConfigFile is the file the configuration was read from, empty when defaults were used
	ConfigFile string `mapstructure:"-"`
}

// SourceConfig describes where the documentation page comes from
type SourceConfig struct {
	URL           string        `mapstructure:"url"`            // Page to scrape (http(s) URL or local HTML file)
	BaseURL       string        `mapstructure:"base_url"`       // Server URL written to the document; inferred when empty
	Timeout       time.Duration `mapstructure:"timeout"`        // Per-request timeout
	UserAgent     string        `mapstructure:"user_agent"`     // User-Agent header for page requests
	CacheDir      string        `mapstructure:"cache_dir"`      // Page cache directory, empty disables caching
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`      // How long cached pages stay fresh
	RetryAttempts int           `mapstructure:"retry_attempts"` // Fetch attempts for transient failures
}

// ExtractionConfig tunes which extracted records are kept
type ExtractionConfig struct {
	ExcludePaths []string `mapstructure:"exclude_paths"` // Path patterns to leave out (e.g., "/internal*")
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir      string   `mapstructure:"dir"`       // Output directory
	FileName string   `mapstructure:"file_name"` // OpenAPI document file name
	Formats  []string `mapstructure:"formats"`   // Exporters to run
}

// ServerConfig holds settings for the serve command
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// KnownFormats lists every accepted value of output.formats
var KnownFormats = []string{
	"openapi", "swagger", "json",
	"yaml", "yml",
	"records",
	"excel", "xlsx",
	"html",
	"word", "docx",
}

// Load reads the configuration from a file or uses defaults.
// If configPath is empty, it looks for "config.yaml" in the current directory.
// A .env file in the working directory is loaded first, so its variables can
// override file values through the DOC_RECON_ environment prefix.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set sensible defaults
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Determine config file to use
	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	used := ""
	if err := v.ReadInConfig(); err != nil {
		// A missing file means defaults, anything else is a broken file
		if !errors.Is(err, fs.ErrNotExist) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigFile = used

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	// Source defaults
	v.SetDefault("source.url", "")
	v.SetDefault("source.base_url", "")
	v.SetDefault("source.timeout", 30*time.Second)
	v.SetDefault("source.user_agent", "doc-recon/1.0")
	v.SetDefault("source.cache_dir", ".doc-recon-cache")
	v.SetDefault("source.cache_ttl", 24*time.Hour)
	v.SetDefault("source.retry_attempts", 3)

	v.SetDefault("extraction.exclude_paths", []string{})

	// Output defaults
	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", "openapi.json")
	v.SetDefault("output.formats", []string{"openapi"})

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	if c.Source.CacheDir != "" {
		absCache, err := filepath.Abs(c.Source.CacheDir)
		if err != nil {
			return fmt.Errorf("failed to resolve source.cache_dir: %w", err)
		}
		c.Source.CacheDir = absCache
	}

	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// GetOutputPath returns the full path of the OpenAPI document
func (c *Config) GetOutputPath() string {
	return filepath.Join(c.Output.Dir, c.Output.FileName)
}

// GetArtifactPath returns the path of a sibling artifact in the output directory
func (c *Config) GetArtifactPath(name string) string {
	return filepath.Join(c.Output.Dir, name)
}

// IsExcluded checks if an endpoint path matches any extraction.exclude_paths pattern
func (c *Config) IsExcluded(path string) bool {
	for _, pattern := range c.Extraction.ExcludePaths {
		if matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

// Validate checks the configuration for a scrape run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source.URL) == "" {
		return fmt.Errorf("source.url is required (pass a URL argument or set %s_SOURCE_URL)", EnvPrefix)
	}
	return c.ValidateOutput()
}

// ValidateOutput checks the settings every export needs
func (c *Config) ValidateOutput() error {
	if c.Output.FileName == "" {
		return fmt.Errorf("output.file_name cannot be empty")
	}

	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("output.formats must contain at least one format")
	}

	for _, format := range c.Output.Formats {
		if !IsKnownFormat(format) {
			return fmt.Errorf("unknown output format %q (known: %s)", format, strings.Join(KnownFormats, ", "))
		}
	}

	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout cannot be negative")
	}

	return nil
}

// IsKnownFormat reports whether format is an accepted output.formats value
func IsKnownFormat(format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	for _, known := range KnownFormats {
		if format == known {
			return true
		}
	}
	return false
}

// matchPattern checks if a string matches a simple glob pattern
// Supports only '*' wildcard at the beginning or end
func matchPattern(str, pattern string) bool {
	if pattern == "*" {
		return true
	}

	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		// *foo* - contains
		middle := pattern[1 : len(pattern)-1]
		return strings.Contains(str, middle)
	} else if strings.HasPrefix(pattern, "*") {
		// *foo - ends with
		return strings.HasSuffix(str, pattern[1:])
	} else if strings.HasSuffix(pattern, "*") {
		// foo* - starts with
		return strings.HasPrefix(str, pattern[:len(pattern)-1])
	}

	// Exact match
	return str == pattern
}

// Print displays the current configuration
func (c *Config) Print(w io.Writer) {
	fmt.Fprintln(w, "=== doc-recon Configuration ===")
	if c.ConfigFile != "" {
		fmt.Fprintf(w, "Config File:      %s\n", c.ConfigFile)
	} else {
		fmt.Fprintln(w, "Config File:      (defaults)")
	}
	fmt.Fprintf(w, "Source URL:       %s\n", c.Source.URL)
	fmt.Fprintf(w, "Base URL:         %s\n", c.Source.BaseURL)
	fmt.Fprintf(w, "Timeout:          %s\n", c.Source.Timeout)
	fmt.Fprintf(w, "Cache:            %s (ttl %s)\n", c.Source.CacheDir, c.Source.CacheTTL)
	fmt.Fprintf(w, "Retry Attempts:   %d\n", c.Source.RetryAttempts)
	fmt.Fprintf(w, "Exclude Paths:    %v\n", c.Extraction.ExcludePaths)
	fmt.Fprintf(w, "Output Directory: %s\n", c.Output.Dir)
	fmt.Fprintf(w, "Output File:      %s\n", c.GetOutputPath())
	fmt.Fprintf(w, "Formats:          %v\n", c.Output.Formats)
	fmt.Fprintln(w, "================================")
}
