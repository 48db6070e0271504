package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Page is one wiki page of the export, in output order.
type Page struct {
	Path         string // absolute path of the page file
	RelativePath string // export-relative, forward slashes, leading "/"
	Level        int    // nesting depth, 0 for top-level pages
	Section      string // wiki-root-relative directory, "" for a single page given directly
	Content      []byte // loaded on demand
}

// Name is the file name without the .md extension.
func (p *Page) Name() string {
	base := filepath.Base(p.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadContent reads the page file once. A page named by a manifest whose file
// does not exist yields ErrPageMissing.
func (p *Page) LoadContent() error {
	if p.Content != nil {
		return nil
	}

	content, err := os.ReadFile(p.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPageMissing, p.Path)
		}
		return fmt.Errorf("%w: %s: %w", ErrFileReadFailed, p.Path, err)
	}

	p.Content = content
	return nil
}

// RelativePaths lists the RelativePath of each page, in order.
func RelativePaths(pages []*Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.RelativePath
	}
	return out
}
