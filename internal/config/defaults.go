package config

import "time"

const (
	defaultOutputFile = "export.html"
	defaultTitle      = "Wiki export"
	defaultDebounce   = 500 * time.Millisecond
)

func applyDefaults(c *Config) {
	if c.Output == "" {
		c.Output = defaultOutputFile
	}
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = defaultDebounce
	}
}
