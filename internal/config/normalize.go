package config

import (
	"strings"

	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
)

// Normalize canonicalizes enumerations and trims list entries in place.
// Unknown enum values are rejected.
func Normalize(c *Config) error {
	if c == nil {
		return errors.InternalError("config is nil").Build()
	}

	lvl, err := logLevelNormalizer.NormalizeWithError(string(c.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.level").Fatal().Build()
	}
	c.Logging.Level = lvl

	format, err := logFormatNormalizer.NormalizeWithError(string(c.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.format").Fatal().Build()
	}
	c.Logging.Format = format

	c.Scan.Single = strings.TrimSpace(c.Scan.Single)
	c.Scan.Exclude = trimAll(c.Scan.Exclude)
	c.Render.TagFilter = trimAll(c.Render.TagFilter)
	c.Render.TOC.Title = strings.TrimSpace(c.Render.TOC.Title)
	return nil
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
