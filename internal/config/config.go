// Package config loads the wikiexport.yaml configuration file.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = "wikiexport.yaml"

// Config is the complete export configuration.
type Config struct {
	// Path is the wiki export directory. Empty means the working directory.
	Path string `yaml:"path"`
	// Output is the HTML file to write. Empty means export.html in the working directory.
	Output string `yaml:"output"`
	// Title of the generated HTML document.
	Title string `yaml:"title"`
	// AttachmentsPath overrides where .attachments links resolve.
	AttachmentsPath string `yaml:"attachments_path"`

	Scan    ScanConfig    `yaml:"scan"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ScanConfig selects the pages that take part in the export.
type ScanConfig struct {
	Single          string   `yaml:"single"`           // export one page and its descendants
	IncludeUnlisted bool     `yaml:"include_unlisted"` // also export pages missing from .order files
	Exclude         []string `yaml:"exclude"`          // case-insensitive regular expressions
}

// RenderConfig controls the HTML output.
type RenderConfig struct {
	TOC           TOCConfig `yaml:"toc"`
	Heading       bool      `yaml:"heading"`
	PathToHeading bool      `yaml:"path_to_heading"`
	BreakPage     bool      `yaml:"break_page"`
	Mermaid       bool      `yaml:"mermaid"`
	MermaidScript string    `yaml:"mermaid_script"` // URL or local file that loads mermaid; empty uses a CDN
	Sanitize      bool      `yaml:"sanitize"`
	TagFilter     []string  `yaml:"tag_filter"`
}

// TOCConfig configures the generated table of contents page.
type TOCConfig struct {
	Title string `yaml:"title"` // empty disables the global TOC
	Index int    `yaml:"index"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig configures Prometheus output.
type MetricsConfig struct {
	// Textfile receives the export metrics in the node_exporter textfile format.
	Textfile string `yaml:"textfile"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, normalizes and validates a configuration file. Environment
// variables, including those from a .env file next to the working directory,
// are expanded in the file before parsing.
func Load(path string) (*Config, error) {
	loadEnvFile()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.ConfigError("failed to read config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.ConfigError("failed to parse config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration file. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	example := Default()
	example.Title = "Wiki"
	example.Scan.Exclude = []string{"/archive/"}
	example.Render.TOC.Title = "Table of Contents"
	example.Render.Heading = true
	example.Render.BreakPage = true

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.InternalError("failed to marshal example config").WithCause(err).Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.FileSystemError("failed to write config file").
			WithCause(err).
			WithContext("path", path).
			Fatal().
			Build()
	}
	return nil
}
