// Package frontmatter splits YAML frontmatter off wiki pages and reads their tags.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the page opened a frontmatter block but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates `---` delimited frontmatter from the markdown body.
// When the page has no frontmatter, had is false and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := newline(content)
	delim := []byte("---" + nl)
	if !bytes.HasPrefix(content, delim) {
		return nil, content, false, nil
	}

	start := len(delim)
	if bytes.HasPrefix(content[start:], delim) {
		return []byte{}, content[start+len(delim):], true, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closing)
	if idx < 0 {
		// a closing delimiter on the very last line has no trailing newline
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			return content[start : len(content)-len("---")], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closing):], true, nil
}

// Strip returns content without its frontmatter block. Malformed frontmatter is kept as is.
func Strip(content []byte) []byte {
	_, body, had, err := Split(content)
	if err != nil || !had {
		return content
	}
	return body
}

// ParseYAML parses raw frontmatter (without delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Tags flattens top-level frontmatter fields into "key:value" strings.
// List values yield one tag per item; nested maps are ignored.
func Tags(fields map[string]any) []string {
	var tags []string
	for key, value := range fields {
		switch v := value.(type) {
		case []any:
			for _, item := range v {
				if s, ok := scalar(item); ok {
					tags = append(tags, key+":"+s)
				}
			}
		default:
			if s, ok := scalar(v); ok {
				tags = append(tags, key+":"+s)
			}
		}
	}
	slices.Sort(tags)
	return tags
}

// MatchesAny reports whether any filter equals one of tags, ignoring case.
// Whitespace around the key and value of a filter is ignored.
func MatchesAny(tags, filters []string) bool {
	for _, f := range filters {
		key, value, ok := strings.Cut(f, ":")
		if !ok {
			continue
		}
		want := strings.TrimSpace(key) + ":" + strings.TrimSpace(value)
		for _, tag := range tags {
			if strings.EqualFold(tag, want) {
				return true
			}
		}
	}
	return false
}

func scalar(v any) (string, bool) {
	switch v := v.(type) {
	case nil, map[string]any, []any:
		return "", false
	case string:
		return strings.TrimSpace(v), true
	default:
		return fmt.Sprint(v), true
	}
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
