package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("a", "b")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Add("c")
	assert.True(t, s.Has("c"))
	assert.Len(t, s, 3)
}

func TestSet_TryAdd(t *testing.T) {
	s := New[string]()
	assert.True(t, s.TryAdd("x"))
	assert.False(t, s.TryAdd("x"))
}
