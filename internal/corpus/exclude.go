package corpus

import (
	"fmt"
	"regexp"
)

// ExcludeSet holds compiled exclude patterns. A page is excluded when its
// relative path contains a match for any of them, ignoring case.
type ExcludeSet struct {
	patterns []*regexp.Regexp
}

// NewExcludeSet compiles patterns in order. Empty patterns are ignored.
func NewExcludeSet(patterns []string) (*ExcludeSet, error) {
	set := &ExcludeSet{}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidExcludePattern, p, err)
		}
		set.patterns = append(set.patterns, re)
	}
	return set, nil
}

// Match returns the first pattern matching relPath. A nil set matches nothing.
func (s *ExcludeSet) Match(relPath string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, re := range s.patterns {
		if re.MatchString(relPath) {
			return re.String()[len("(?i)"):], true
		}
	}
	return "", false
}

// Len is the number of compiled patterns.
func (s *ExcludeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}
