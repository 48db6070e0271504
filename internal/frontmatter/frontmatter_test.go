package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntags: [draft]\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("tags: [draft]\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_CRLF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyBlockAndClosingAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)

	fm, body, had, err = Split([]byte("---\nkey: value\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Empty(t, body)
}

func TestSplit_MissingClosingDelimiter(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.False(t, had)
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "# Body\n", string(Strip([]byte("---\na: 1\n---\n# Body\n"))))
	malformed := []byte("---\na: 1\n# Body\n")
	assert.Equal(t, malformed, Strip(malformed))
}

func TestParseYAML(t *testing.T) {
	fields, err := ParseYAML([]byte("title: Home\n"))
	require.NoError(t, err)
	assert.Equal(t, "Home", fields["title"])

	fields, err = ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = ParseYAML([]byte("title: [unclosed\n"))
	require.Error(t, err)
}

func TestTagsAndMatchesAny(t *testing.T) {
	fields, err := ParseYAML([]byte("audience: Ops\ntags:\n  - draft\n  - internal\nowner:\n  name: x\nweight: 3\n"))
	require.NoError(t, err)

	tags := Tags(fields)
	assert.Equal(t, []string{"audience:Ops", "tags:draft", "tags:internal", "weight:3"}, tags)

	tests := []struct {
		name    string
		filters []string
		want    bool
	}{
		{"exact", []string{"tags:draft"}, true},
		{"case and spaces", []string{" Audience : ops "}, true},
		{"any of several", []string{"tags:public", "weight:3"}, true},
		{"no match", []string{"tags:public"}, false},
		{"not a key value", []string{"draft"}, false},
		{"no filters", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesAny(tags, tt.filters))
		})
	}
}
