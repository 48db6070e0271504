package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/wikiexport/internal/logfields"
	"git.home.luguber.info/inful/wikiexport/internal/util/sets"
	"git.home.luguber.info/inful/wikiexport/internal/wiki"
)

const pageExt = ".md"

// Policy names the page selection strategy of a scan.
type Policy string

const (
	PolicyManifest   Policy = "manifest"
	PolicyDirectory  Policy = "directory"
	PolicySingleFile Policy = "single-file"
)

// Options configure a Scanner.
type Options struct {
	Excludes *ExcludeSet
	// IncludeUnlisted selects the directory policy: pages missing from the
	// manifest and directories no page owns are scanned as well.
	IncludeUnlisted bool
}

// Scanner walks a wiki tree and returns its pages in export order.
type Scanner struct {
	root   *wiki.Root
	opts   Options
	logger *slog.Logger
}

// NewScanner creates a scanner for root. A nil logger uses slog.Default().
func NewScanner(root *wiki.Root, opts Options, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{root: root, opts: opts, logger: logger}
}

// Policy reports which policy the scanner applies.
func (s *Scanner) Policy() Policy {
	if s.opts.IncludeUnlisted {
		return PolicyDirectory
	}
	return PolicyManifest
}

// Scan returns the pages below the export directory, depth first.
func (s *Scanner) Scan() ([]*Page, error) {
	return s.scanDir(s.root.ExportDir, 0)
}

func (s *Scanner) scanDir(dir string, level int) ([]*Page, error) {
	s.logger.Debug("Scanning directory", logfields.Path(dir), logfields.Level(level), logfields.Indent(level))

	names, hasManifest, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	files, subdirs, err := listDir(dir)
	if err != nil {
		return nil, err
	}
	if hasManifest {
		s.logger.Debug("Order file found", logfields.Path(dir), logfields.Count(len(names)), logfields.Indent(level+1))
	}

	var entries []string
	if s.opts.IncludeUnlisted {
		entries = orderPages(files, names)
	} else {
		entries = make([]string, 0, len(names))
		for _, name := range names {
			entries = append(entries, name+pageExt)
		}
	}

	var result []*Page
	claimed := sets.New[string]()
	for _, entry := range entries {
		page := s.newPage(filepath.Join(dir, entry), level)
		if pattern, excluded := s.opts.Excludes.Match(page.RelativePath); excluded {
			s.logger.Info("Skipping page", logfields.Path(page.RelativePath), logfields.Pattern(pattern), logfields.Indent(level+2))
		} else {
			s.logger.Debug("Adding page", logfields.Path(page.RelativePath), logfields.Indent(level+2))
			result = append(result, page)
		}

		// descendants follow their page even when the page itself is excluded
		sub, ok := ownedDir(subdirs, claimed, strings.TrimSuffix(entry, pageExt))
		if !ok {
			continue
		}
		claimed.Add(sub)
		children, err := s.scanDir(filepath.Join(dir, sub), level+1)
		if err != nil {
			return nil, err
		}
		result = append(result, children...)
	}

	if !s.opts.IncludeUnlisted {
		return result, nil
	}
	for _, sub := range subdirs {
		if claimed.Has(sub) {
			continue
		}
		children, err := s.scanDir(filepath.Join(dir, sub), level+1)
		if err != nil {
			return nil, err
		}
		result = append(result, children...)
	}
	return result, nil
}

func (s *Scanner) newPage(path string, level int) *Page {
	return &Page{
		Path:         path,
		RelativePath: s.root.RelativePath(path),
		Level:        level,
		Section:      s.root.Section(path),
	}
}

// listDir returns the page files and non-dotted subdirectories of dir, both in
// ordinal order.
func listDir(dir string) (files, subdirs []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrDirectoryRead, dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		switch {
		case e.IsDir():
			if !strings.HasPrefix(name, ".") {
				subdirs = append(subdirs, name)
			}
		case strings.HasSuffix(name, pageExt):
			files = append(files, name)
		}
	}
	slices.Sort(files)
	slices.Sort(subdirs)
	return files, subdirs, nil
}

// orderPages moves pages named by the manifest to the front, in manifest
// order. Unlisted pages keep their relative order after them.
func orderPages(files, manifest []string) []string {
	if len(manifest) == 0 {
		return files
	}
	picked := make([]bool, len(files))
	ordered := make([]string, 0, len(files))
	for _, name := range manifest {
		for i, f := range files {
			if !picked[i] && strings.EqualFold(strings.TrimSuffix(f, pageExt), name) {
				picked[i] = true
				ordered = append(ordered, f)
				break
			}
		}
	}
	for i, f := range files {
		if !picked[i] {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

// ownedDir finds the unclaimed subdirectory owned by the page with base name.
func ownedDir(subdirs []string, claimed sets.Set[string], base string) (string, bool) {
	for _, sub := range subdirs {
		if !claimed.Has(sub) && strings.EqualFold(sub, base) {
			return sub, true
		}
	}
	return "", false
}
