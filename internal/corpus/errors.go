package corpus

import "errors"

var (
	// ErrPageNotFound indicates the page requested for a single-file export does not exist.
	ErrPageNotFound = errors.New("page not found")

	// ErrPageMissing indicates a manifest entry names a page file that does not exist.
	ErrPageMissing = errors.New("page file missing")

	// ErrDirectoryRead indicates listing a wiki directory failed.
	ErrDirectoryRead = errors.New("wiki directory read failed")

	// ErrManifestRead indicates an existing .order manifest could not be read.
	ErrManifestRead = errors.New("order manifest read failed")

	// ErrFileReadFailed indicates reading page content failed.
	ErrFileReadFailed = errors.New("page read failed")

	// ErrInvalidExcludePattern indicates an exclude pattern is not a valid regular expression.
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")
)
