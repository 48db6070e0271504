// Package wiki locates the root of an exported wiki tree.
//
// A wiki root is the nearest directory at or above the export directory that
// holds an `.attachments` directory. Root-relative links (`/Some/Page.md`) and
// attachment references resolve against it, so exporting a subtree still finds
// the files the pages point at.
package wiki

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
)

// AttachmentsDir is the reserved directory name marking a wiki root.
const AttachmentsDir = ".attachments"

// ErrRootNotFound indicates the export directory does not exist.
var ErrRootNotFound = stderrors.New("wiki export directory not found")

// Root pairs the directory being exported with the wiki root above it.
type Root struct {
	ExportDir string // absolute, cleaned
	BaseDir   string // ExportDir or its nearest ancestor holding AttachmentsDir
}

// Resolve builds the Root for dir. It fails with a not-found error when dir
// is missing or is not a directory. When no ancestor carries an attachments
// directory, BaseDir falls back to dir itself.
func Resolve(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve export directory").
			Fatal().
			WithContext("path", dir).
			Build()
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, errors.WrapError(ErrRootNotFound, errors.CategoryNotFound, "wiki export directory not found").
			Fatal().
			WithContext("path", abs).
			Build()
	}

	return &Root{ExportDir: abs, BaseDir: findBase(abs)}, nil
}

func findBase(dir string) string {
	for current := dir; ; {
		if isDir(filepath.Join(current, AttachmentsDir)) {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}

// SubtreePrefix is the export directory relative to the wiki root, with forward
// slashes and a leading "/". It is empty when the whole wiki is exported.
func (r *Root) SubtreePrefix() string {
	rel, err := filepath.Rel(r.BaseDir, r.ExportDir)
	if err != nil || rel == "." {
		return ""
	}
	return "/" + filepath.ToSlash(rel)
}

// RelativePath renders path relative to the export directory in the
// forward-slash, leading-slash form used for page identities.
func (r *Root) RelativePath(path string) string {
	rel, err := filepath.Rel(r.ExportDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return "/" + strings.TrimPrefix(filepath.ToSlash(rel), "./")
}

// WikiPath renders path relative to the wiki root, forward slashes, leading "/".
func (r *Root) WikiPath(path string) string {
	rel, err := filepath.Rel(r.BaseDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return "/" + filepath.ToSlash(rel)
}

// Section renders the directory of path relative to the wiki root in the same form.
// A page directly in the wiki root has section "/".
func (r *Root) Section(path string) string {
	rel, err := filepath.Rel(r.BaseDir, filepath.Dir(path))
	if err != nil || rel == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(rel)
}

// AttachmentsPath is the attachments directory of the wiki root.
func (r *Root) AttachmentsPath() string {
	return filepath.Join(r.BaseDir, AttachmentsDir)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
