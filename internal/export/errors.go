package export

import "errors"

// ErrWriteOutput wraps failures writing the HTML document.
var ErrWriteOutput = errors.New("failed to write export")
