package wiki

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
)

func TestResolve_FindsAncestorWithAttachments(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, AttachmentsDir), 0o755))
	sub := filepath.Join(base, "Guides", "Setup")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := Resolve(sub)
	require.NoError(t, err)
	assert.Equal(t, sub, root.ExportDir)
	assert.Equal(t, base, root.BaseDir)
	assert.Equal(t, "/Guides/Setup", root.SubtreePrefix())
	assert.Equal(t, filepath.Join(base, AttachmentsDir), root.AttachmentsPath())
}

func TestResolve_FallsBackToExportDir(t *testing.T) {
	dir := t.TempDir()

	root, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, root.ExportDir, root.BaseDir)
	assert.Empty(t, root.SubtreePrefix())
}

func TestResolve_AttachmentsFileIsNotAMarker(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, AttachmentsDir), nil, 0o600))
	sub := filepath.Join(base, "Child")
	require.NoError(t, os.Mkdir(sub, 0o755))

	root, err := Resolve(sub)
	require.NoError(t, err)
	assert.Equal(t, sub, root.BaseDir)
}

func TestResolve_MissingDirectory(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRootNotFound)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	assert.Equal(t, errors.SeverityFatal, errors.GetSeverity(err))
}

func TestResolve_FileIsNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "page.md")
	require.NoError(t, os.WriteFile(file, []byte("# x"), 0o600))

	_, err := Resolve(file)
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestRoot_RelativePathAndSection(t *testing.T) {
	base := t.TempDir()
	root := &Root{ExportDir: filepath.Join(base, "Sub"), BaseDir: base}

	page := filepath.Join(base, "Sub", "Dir", "Page.md")
	assert.Equal(t, "/Dir/Page.md", root.RelativePath(page))
	assert.Equal(t, "/Sub/Dir", root.Section(page))
	assert.Equal(t, "/", root.Section(filepath.Join(base, "Top.md")))
	assert.Equal(t, "/Sub/Dir/Page.md", root.WikiPath(page))
}
