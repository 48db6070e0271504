// Package sets provides a minimal generic set.
package sets

// Set is a hash set for comparable keys.
// Usage: s := sets.New[string]("a", "b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// TryAdd inserts v and reports whether it was absent.
func (s Set[T]) TryAdd(v T) bool {
	if s.Has(v) {
		return false
	}
	s.Add(v)
	return true
}
