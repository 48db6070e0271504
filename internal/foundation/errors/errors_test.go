package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("builder sets fields", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			Fatal().
			WithContext("file", "wikiexport.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "wikiexport.yaml", file)
		assert.True(t, err.IsFatal())
	})

	t.Run("wrapped sentinel stays reachable", func(t *testing.T) {
		sentinel := stderrors.New("root directory not found")
		err := WrapError(sentinel, CategoryNotFound, "wiki root missing").Fatal().Build()

		assert.ErrorIs(t, err, sentinel)
		assert.Contains(t, err.Error(), "[not_found:fatal] wiki root missing")
	})

	t.Run("classification survives fmt wrapping", func(t *testing.T) {
		inner := NotFoundError("page missing").Build()
		outer := fmt.Errorf("export: %w", inner)

		assert.True(t, IsClassified(outer))
		assert.True(t, HasCategory(outer, CategoryNotFound))
		assert.Equal(t, SeverityFatal, GetSeverity(outer))
	})

	t.Run("WithCause wraps", func(t *testing.T) {
		cause := stderrors.New("permission denied")
		err := FileSystemError("failed to write export").WithCause(cause).Fatal().Build()

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, CategoryFileSystem, err.Category())
		assert.True(t, err.IsFatal())
	})

	t.Run("unclassified defaults", func(t *testing.T) {
		err := stderrors.New("plain")
		assert.Equal(t, CategoryInternal, GetCategory(err))
		assert.Equal(t, SeverityError, GetSeverity(err))
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := RenderError("render failed").Build()
		withPath := base.WithContext("path", "/a.md")

		_, ok := base.Context().Get("path")
		assert.False(t, ok)
		p, _ := withPath.Context().GetString("path")
		assert.Equal(t, "/a.md", p)
	})
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"x": 1, "y": 2}
	b := ErrorContext{"y": 3}
	m := a.Merge(b)
	assert.Equal(t, 1, m["x"])
	assert.Equal(t, 3, m["y"])
	assert.Equal(t, 2, a["y"])
}
