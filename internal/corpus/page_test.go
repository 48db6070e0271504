package corpus

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikiexport/internal/testutil"
)

func TestPage_LoadContent(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{"Home.md": "# Home\n"})
	page := &Page{Path: filepath.Join(dir, "Home.md")}

	require.NoError(t, page.LoadContent())
	assert.Equal(t, "# Home\n", string(page.Content))
	assert.Equal(t, "Home", page.Name())

	// already loaded content is kept
	page.Content = []byte("changed")
	require.NoError(t, page.LoadContent())
	assert.Equal(t, "changed", string(page.Content))
}

func TestPage_LoadContentMissing(t *testing.T) {
	page := &Page{Path: filepath.Join(t.TempDir(), "Forward-Looking.md")}

	err := page.LoadContent()
	assert.ErrorIs(t, err, ErrPageMissing)
	assert.Nil(t, page.Content)
}

func TestExcludeSet(t *testing.T) {
	set := mustExcludes(t, "draft", "", "^/Archive/")
	assert.Equal(t, 2, set.Len())

	pattern, ok := set.Match("/Guides/DRAFT-Plan.md")
	assert.True(t, ok)
	assert.Equal(t, "draft", pattern)

	pattern, ok = set.Match("/archive/Old.md")
	assert.True(t, ok)
	assert.Equal(t, "^/Archive/", pattern)

	_, ok = set.Match("/Guides/Plan.md")
	assert.False(t, ok)

	var nilSet *ExcludeSet
	_, ok = nilSet.Match("/anything")
	assert.False(t, ok)
}

func TestExcludeSet_InvalidPattern(t *testing.T) {
	_, err := NewExcludeSet([]string{"ok", "(unclosed"})
	assert.ErrorIs(t, err, ErrInvalidExcludePattern)
}

func TestReadManifest(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{".order": "First\r\n\r\n  \nSecond-Page\r\nThird"})

	names, found, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"First", "Second-Page", "Third"}, names)

	names, found, err = ReadManifest(t.TempDir())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, names)
}
