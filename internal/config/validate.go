package config

import (
	"regexp"

	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
)

// Validate checks values that cannot be repaired by normalization.
func Validate(c *Config) error {
	for _, p := range c.Scan.Exclude {
		if _, err := regexp.Compile("(?i)" + p); err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid exclude pattern").
				WithContext("pattern", p).
				Fatal().
				Build()
		}
	}
	if c.Render.TOC.Index < 0 {
		return errors.ValidationError("render.toc.index must not be negative").
			WithContext("index", c.Render.TOC.Index).
			Build()
	}
	return nil
}
