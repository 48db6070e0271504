package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("WIKI_DIR", "/srv/wiki")
	path := writeConfig(t, `
path: ${WIKI_DIR}
title: Team wiki
scan:
  include_unlisted: true
  exclude:
    - " /archive/ "
    - ""
render:
  toc:
    title: " Contents "
    index: 2
  tag_filter: ["type:guide"]
logging:
  level: WARNING
  format: JSON
watch:
  debounce: 2s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/wiki", cfg.Path)
	assert.Equal(t, "Team wiki", cfg.Title)
	assert.Equal(t, defaultOutputFile, cfg.Output)
	assert.True(t, cfg.Scan.IncludeUnlisted)
	assert.Equal(t, []string{"/archive/"}, cfg.Scan.Exclude)
	assert.Equal(t, "Contents", cfg.Render.TOC.Title)
	assert.Equal(t, 2, cfg.Render.TOC.Index)
	assert.Equal(t, []string{"type:guide"}, cfg.Render.TagFilter)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		category errors.ErrorCategory
	}{
		{"bad yaml", "scan: [", errors.CategoryConfig},
		{"unknown log level", "logging:\n  level: loud\n", errors.CategoryConfig},
		{"bad exclude pattern", "scan:\n  exclude: ['(']\n", errors.CategoryValidation},
		{"negative toc index", "render:\n  toc:\n    index: -1\n", errors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.category, errors.GetCategory(err))
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, errors.CategoryNotFound, errors.GetCategory(err))
	})
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.WriteFile(".env", []byte("WIKI_TITLE=From dotenv\n"), 0o600))
	t.Setenv("WIKI_TITLE", "")
	require.NoError(t, os.Unsetenv("WIKI_TITLE"))

	cfg, err := Load(writeConfig(t, "title: ${WIKI_TITLE}\n"))
	require.NoError(t, err)
	assert.Equal(t, "From dotenv", cfg.Title)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, defaultOutputFile, cfg.Output)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, defaultDebounce, cfg.Watch.Debounce)
	require.NoError(t, Validate(cfg))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Table of Contents", cfg.Render.TOC.Title)
	assert.Equal(t, []string{"/archive/"}, cfg.Scan.Exclude)

	err = Init(path, false)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryValidation, errors.GetCategory(err))
	require.NoError(t, Init(path, true))
}

func TestNormalizeLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, NormalizeLogLevel(" DEBUG "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("bogus"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("Json"))
}
