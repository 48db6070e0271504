// Package toc builds the global table of contents page of an export and cleans
// up its rendered HTML.
//
// Heading and fence detection is line and regex based rather than a markdown
// parse. Output generated by earlier exports depends on these exact rules.
package toc

import (
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/wikiexport/internal/corpus"
)

// Marker is the paragraph the renderer replaces with a navigation list.
const Marker = "[TOC]"

var (
	// A fence opens at line start and runs to the next fence token anywhere,
	// or to the end of the content.
	fencePattern   = regexp.MustCompile("(?ms)^[ \t]*(?:```|~~~).*?(?:```|~~~|\\z)")
	headingPattern = regexp.MustCompile(`(?m)^ *#{1,6} ?[^#\n].*$`)
)

// StripFences removes fenced code regions from content.
func StripFences(content string) string {
	return fencePattern.ReplaceAllString(content, "")
}

// Headings returns the trimmed heading lines of content outside fenced code.
func Headings(content string) []string {
	matches := headingPattern.FindAllString(StripFences(content), -1)
	for i, m := range matches {
		matches[i] = strings.TrimSpace(m)
	}
	return matches
}

// Build returns the global TOC lines for contents: the marker followed by every
// heading in order. It returns nil when no content has a heading.
func Build(contents []string) []string {
	var headings []string
	for _, c := range contents {
		headings = append(headings, Headings(c)...)
	}
	if len(headings) == 0 {
		return nil
	}
	return append([]string{Marker}, headings...)
}

// NewPage builds the TOC page from the loaded pages and inserts it at index,
// clamped to len(pages). It returns the new sequence and the TOC position, or
// pages unchanged and -1 when there is nothing to list.
func NewPage(pages []*corpus.Page, title string, index int) ([]*corpus.Page, int) {
	contents := make([]string, 0, len(pages))
	for _, p := range pages {
		contents = append(contents, string(p.Content))
	}
	lines := Build(contents)
	if lines == nil {
		return pages, -1
	}

	index = max(0, min(index, len(pages)))
	anchorPage := pages[min(index, len(pages)-1)]
	name := title + ".md"
	page := &corpus.Page{
		Path:         filepath.Join(filepath.Dir(anchorPage.Path), name),
		RelativePath: "/" + name,
		Section:      anchorPage.Section,
		Content:      []byte(strings.Join(lines, "\n")),
	}

	out := make([]*corpus.Page, 0, len(pages)+1)
	out = append(out, pages[:index]...)
	out = append(out, page)
	out = append(out, pages[index:]...)
	return out, index
}
