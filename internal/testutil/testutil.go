// Package testutil holds fixture and assertion helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree creates files under a fresh temp dir and returns it. Keys are
// slash separated paths; a trailing "/" makes an empty directory.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// FileAssertions checks files below a base directory.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

// AssertFileExists validates that a file exists.
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist.
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains every expected fragment.
func (fa *FileAssertions) AssertFileContains(relativePath string, expected ...string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if !ok {
		return fa
	}
	for _, want := range expected {
		if !strings.Contains(content, want) {
			fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s", relativePath, want, content)
		}
	}
	return fa
}

// AssertFileNotContains validates that a file contains none of the fragments.
func (fa *FileAssertions) AssertFileNotContains(relativePath string, unexpected ...string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if !ok {
		return fa
	}
	for _, bad := range unexpected {
		if strings.Contains(content, bad) {
			fa.t.Errorf("Expected file %s not to contain %q", relativePath, bad)
		}
	}
	return fa
}

func (fa *FileAssertions) read(relativePath string) (string, bool) {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return "", false
	}
	return string(content), true
}
