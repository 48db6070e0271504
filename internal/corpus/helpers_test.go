package corpus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikiexport/internal/testutil"
	"git.home.luguber.info/inful/wikiexport/internal/wiki"
)

// mentionedFixture is the wiki shared by the scanner scenarios.
func mentionedFixture(t *testing.T) *wiki.Root {
	t.Helper()
	dir := testutil.WriteTree(t, map[string]string{
		".order":               "Mentioned-Section\nMentioned-Section-No-Home\n",
		"Mentioned-Section.md": "# Mentioned",
		"Start-Page.md":        "# Start",
		"Mentioned-Section/In-Mentioned-Section.md": "# In mentioned",
		"Mentioned-Section-No-Home/In-Mentioned-Section-No-Home.md": "# In no home",
		"Unmentioned-Section/In-Unmentioned-Section.md":             "# In unmentioned",
	})
	root, err := wiki.Resolve(dir)
	require.NoError(t, err)
	return root
}

func mustExcludes(t *testing.T, patterns ...string) *ExcludeSet {
	t.Helper()
	set, err := NewExcludeSet(patterns)
	require.NoError(t, err)
	return set
}

func scanPaths(t *testing.T, root *wiki.Root, opts Options) []string {
	t.Helper()
	pages, err := NewScanner(root, opts, nil).Scan()
	require.NoError(t, err)
	return RelativePaths(pages)
}
