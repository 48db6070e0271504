// Package errors provides the classified error type used across wikiexport.
//
// Errors carry a category (what kind of failure), a severity (whether the export
// can continue) and free-form context. The CLI uses the category to pick an exit
// code; library code wraps package sentinels so callers can still use errors.Is.
//
// Example usage:
//
//	err := errors.WrapError(corpus.ErrPageNotFound, errors.CategoryNotFound, "single-file page not found").
//		Fatal().
//		WithContext("name", name).
//		Build()
package errors
