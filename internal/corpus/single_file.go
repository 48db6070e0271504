package corpus

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
	"git.home.luguber.info/inful/wikiexport/internal/logfields"
	"git.home.luguber.info/inful/wikiexport/internal/wiki"
)

// SingleFileScanner exports one page, or one manifest entry with its descendants.
type SingleFileScanner struct {
	root     *wiki.Root
	name     string
	excludes *ExcludeSet
	logger   *slog.Logger
}

// NewSingleFileScanner creates a scanner for the page called name.
//
// A name ending in .md is a page file, looked up in the export directory first
// and the working directory second. Any other name selects the first manifest
// entry whose relative path contains it.
func NewSingleFileScanner(root *wiki.Root, name string, excludes *ExcludeSet, logger *slog.Logger) *SingleFileScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &SingleFileScanner{root: root, name: name, excludes: excludes, logger: logger}
}

// Policy reports PolicySingleFile.
func (s *SingleFileScanner) Policy() Policy { return PolicySingleFile }

// Scan returns the selected pages or a not-found error.
func (s *SingleFileScanner) Scan() ([]*Page, error) {
	if strings.HasSuffix(strings.ToLower(s.name), pageExt) {
		return s.scanFile()
	}

	all, err := NewScanner(s.root, Options{Excludes: s.excludes}, s.logger).Scan()
	if err != nil {
		return nil, err
	}
	for i, page := range all {
		if !strings.Contains(page.RelativePath, s.name) {
			continue
		}
		result := []*Page{page}
		for _, next := range all[i+1:] {
			if next.Level <= page.Level {
				break
			}
			result = append(result, next)
		}
		s.logger.Info("Single page selected", logfields.Path(page.RelativePath), logfields.Count(len(result)))
		return result, nil
	}
	return nil, s.notFound()
}

func (s *SingleFileScanner) scanFile() ([]*Page, error) {
	candidates := []string{s.name}
	if !filepath.IsAbs(s.name) {
		candidates = []string{filepath.Join(s.root.ExportDir, s.name)}
		if abs, err := filepath.Abs(s.name); err == nil {
			candidates = append(candidates, abs)
		}
	}
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		return []*Page{{
			Path:         path,
			RelativePath: s.root.RelativePath(path),
		}}, nil
	}
	return nil, s.notFound()
}

func (s *SingleFileScanner) notFound() error {
	s.logger.Error("Single page not found", logfields.Name(s.name))
	return errors.WrapError(ErrPageNotFound, errors.CategoryNotFound, "single page not found").
		Fatal().
		WithContext("name", s.name).
		Build()
}
