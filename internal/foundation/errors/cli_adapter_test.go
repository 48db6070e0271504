package errors

import (
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad pattern").Build(), 2},
		{"not found", NotFoundError("no such wiki").Build(), 3},
		{"config", ConfigError("bad config").Build(), 7},
		{"filesystem", FileSystemError("write failed").Build(), 11},
		{"render", RenderError("goldmark failed").Build(), 11},
		{"scan", ScanError("unreadable manifest").Build(), 11},
		{"internal", InternalError("boom").Build(), 10},
		{"unclassified", stderrors.New("unknown"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := NotFoundError("wiki export path not found").WithContext("path", "/nope").Build()

	quiet := NewCLIErrorAdapter(false, nil)
	assert.Equal(t, "Error: wiki export path not found (/nope)", quiet.FormatError(err))

	verbose := NewCLIErrorAdapter(true, nil)
	assert.Contains(t, verbose.FormatError(err), "[not_found:fatal]")

	assert.Empty(t, quiet.FormatError(nil))
}
