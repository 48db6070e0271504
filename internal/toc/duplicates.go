package toc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var headingLine = regexp.MustCompile(`^ *<h[1-6].*>.*</h[1-6]>[ \t\r]*$`)

type span struct{ start, end int }

// RemoveDuplicateHeadings blanks every line of the rendered TOC page that is a
// single heading tag, since the navigation list already repeats those headings.
// Lines overlapping a <nav> element are kept. Leading and trailing newlines are
// trimmed from the result.
func RemoveDuplicateHeadings(rendered string) string {
	navs := navSpans(rendered)
	lines := strings.Split(rendered, "\n")

	offset := 0
	for i, line := range lines {
		start, end := offset, offset+len(line)
		offset = end + 1
		if headingLine.MatchString(line) && !overlaps(navs, start, end) {
			lines[i] = ""
		}
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// navSpans returns the byte ranges of the outermost <nav> elements.
// An unclosed nav runs to the end of the input.
func navSpans(s string) []span {
	var spans []span
	z := html.NewTokenizer(strings.NewReader(s))
	offset, depth, start := 0, 0, 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tokenStart := offset
		offset += len(z.Raw())

		name, _ := z.TagName()
		if atom.Lookup(name) != atom.Nav {
			continue
		}
		switch tt {
		case html.StartTagToken:
			if depth == 0 {
				start = tokenStart
			}
			depth++
		case html.EndTagToken:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				spans = append(spans, span{start, offset})
			}
		}
	}
	if depth > 0 {
		spans = append(spans, span{start, len(s)})
	}
	return spans
}

func overlaps(spans []span, start, end int) bool {
	for _, sp := range spans {
		if start < sp.end && end > sp.start {
			return true
		}
	}
	return false
}
