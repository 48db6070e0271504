// Package normalization maps loosely written config strings onto typed enums.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Func cleans a raw string before lookup.
type Func func(string) string

// Normalizer converts strings into values of an enum type T.
type Normalizer[T comparable] struct {
	name         string
	values       map[string]T
	defaultValue T
	keys         []string
	clean        Func
}

// NewNormalizer builds a normalizer that trims and lowercases input.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	return WithCustomNormalizer(name, values, defaultValue, lowerTrim)
}

// WithCustomNormalizer builds a normalizer with its own cleaning function.
// Keys of values are cleaned with the same function.
func WithCustomNormalizer[T comparable](name string, values map[string]T, defaultValue T, clean Func) *Normalizer[T] {
	n := &Normalizer[T]{
		name:         name,
		values:       make(map[string]T, len(values)),
		defaultValue: defaultValue,
		clean:        clean,
	}
	for k, v := range values {
		key := clean(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	slices.Sort(n.keys)
	return n
}

// Normalize returns the matching value, or the default for unknown input.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[n.clean(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// NormalizeWithError returns the matching value or an error listing the valid keys.
// An empty string yields the default.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	cleaned := n.clean(raw)
	if cleaned == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.values[cleaned]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", n.name, raw, strings.Join(n.keys, ", "))
}

// Valid reports whether value is one of the known enum values.
func (n *Normalizer[T]) Valid(value T) bool {
	for _, v := range n.values {
		if v == value {
			return true
		}
	}
	return false
}

// ValidKeys returns the accepted spellings in sorted order.
func (n *Normalizer[T]) ValidKeys() []string {
	return slices.Clone(n.keys)
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
