package export

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikiexport/internal/config"
	"git.home.luguber.info/inful/wikiexport/internal/corpus"
	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
	"git.home.luguber.info/inful/wikiexport/internal/metrics"
	"git.home.luguber.info/inful/wikiexport/internal/testutil"
)

func writeWiki(t *testing.T) string {
	t.Helper()
	return testutil.WriteTree(t, map[string]string{
		".attachments/logo.png": "\x89PNG fake",
		".order":                "Home\nGuide\nGhost\n",
		"Home.md":               "# Welcome\n\nSee [the guide](Guide.md).\n",
		"Guide.md":              "# Guide\n\n![logo](/.attachments/logo.png)\n\n[broken](nope.md)\n",
		"Guide/Install.md":      "# Install\n",
	})
}

func newConfig(t *testing.T, wikiDir string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Path = wikiDir
	cfg.Output = filepath.Join(t.TempDir(), "out", "export.html")
	return cfg
}

func TestExport_ManifestPolicy(t *testing.T) {
	cfg := newConfig(t, writeWiki(t))

	result, err := New(cfg, nil).Export(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.ExportID)
	assert.Equal(t, corpus.PolicyManifest, result.Policy)
	assert.Equal(t, 3, result.PagesScanned)
	assert.Equal(t, 2, result.PagesRendered)
	assert.Equal(t, 1, result.PagesSkipped)
	assert.Equal(t, []string{"nope.md"}, result.Unresolved)
	assert.Equal(t, metrics.ResultWarning, result.Outcome())
	assert.Equal(t, cfg.Output, result.OutputPath)

	testutil.NewFileAssertions(t, filepath.Dir(cfg.Output)).
		AssertFileContains("export.html",
			`<a id="home">&nbsp;</a>`,
			`<a id="guide">&nbsp;</a>`,
			`href="#guide"`,
			`src="data:image/png;base64,`).
		AssertFileNotContains("export.html", "Install")
}

func TestExport_IncludeUnlisted(t *testing.T) {
	cfg := newConfig(t, writeWiki(t))
	cfg.Scan.IncludeUnlisted = true

	result, err := New(cfg, nil).Render(context.Background())
	require.NoError(t, err)

	assert.Equal(t, corpus.PolicyDirectory, result.Policy)
	assert.Contains(t, result.HTML, `<a id="guideinstall">&nbsp;</a>`)
	assert.Contains(t, result.HTML, `<h2 id="install-install">Install</h2>`)
}

func TestExport_SingleFileWinsOverIncludeUnlisted(t *testing.T) {
	cfg := newConfig(t, writeWiki(t))
	cfg.Scan.Single = "Guide"
	cfg.Scan.IncludeUnlisted = true

	result, err := New(cfg, nil).Render(context.Background())
	require.NoError(t, err)

	assert.Equal(t, corpus.PolicySingleFile, result.Policy)
	assert.Equal(t, 1, result.PagesScanned)
	assert.NotContains(t, result.HTML, `<a id="home">`)
	assert.Contains(t, result.HTML, `<a id="guide">`)
}

func TestExport_GlobalTOC(t *testing.T) {
	cfg := newConfig(t, writeWiki(t))
	cfg.Render.TOC.Title = "Contents"

	result, err := New(cfg, nil).Render(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.PagesRendered)
	assert.Contains(t, result.HTML, `<nav class="toc">`)
	assert.Contains(t, result.HTML, `<a href="#home-welcome">Welcome</a>`)
	assert.Contains(t, result.HTML, `<a href="#guide-guide">Guide</a>`)
}

func TestExport_MermaidScript(t *testing.T) {
	wiki := testutil.WriteTree(t, map[string]string{
		".order":  "Flow\n",
		"Flow.md": "```mermaid\ngraph TD;\n```\n",
	})

	t.Run("local file is inlined", func(t *testing.T) {
		cfg := newConfig(t, wiki)
		cfg.Render.Mermaid = true
		cfg.Render.MermaidScript = filepath.Join(t.TempDir(), "mermaid.min.js")
		require.NoError(t, os.WriteFile(cfg.Render.MermaidScript, []byte("var mermaid = {};"), 0o600))

		result, err := New(cfg, nil).Render(context.Background())
		require.NoError(t, err)
		assert.Contains(t, result.HTML, "<script>\nvar mermaid = {};\n</script>")
		assert.Contains(t, result.HTML, `<div class="mermaid">`)
	})

	t.Run("url is referenced", func(t *testing.T) {
		cfg := newConfig(t, wiki)
		cfg.Render.Mermaid = true
		cfg.Render.MermaidScript = "https://cdn.example.com/mermaid.js"

		result, err := New(cfg, nil).Render(context.Background())
		require.NoError(t, err)
		assert.Contains(t, result.HTML, `<script src="https://cdn.example.com/mermaid.js"></script>`)
	})

	t.Run("missing file fails", func(t *testing.T) {
		cfg := newConfig(t, wiki)
		cfg.Render.Mermaid = true
		cfg.Render.MermaidScript = filepath.Join(t.TempDir(), "absent.js")

		_, err := New(cfg, nil).Render(context.Background())
		require.Error(t, err)
		assert.Equal(t, errors.CategoryFileSystem, errors.GetCategory(err))
	})
}

func TestExport_Errors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		cfg := newConfig(t, filepath.Join(t.TempDir(), "missing"))
		_, err := New(cfg, nil).Export(context.Background())
		require.Error(t, err)
		assert.Equal(t, errors.CategoryNotFound, errors.GetCategory(err))
	})

	t.Run("single page not found", func(t *testing.T) {
		cfg := newConfig(t, writeWiki(t))
		cfg.Scan.Single = "Nowhere"
		_, err := New(cfg, nil).Export(context.Background())
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, corpus.ErrPageNotFound))
		_, statErr := os.Stat(cfg.Output)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("unreadable manifest", func(t *testing.T) {
		dir := testutil.WriteTree(t, map[string]string{
			".order/": "",
			"Home.md": "# Home\n",
		})
		_, err := New(newConfig(t, dir), nil).Export(context.Background())
		require.Error(t, err)
		assert.Equal(t, errors.CategoryScan, errors.GetCategory(err))
		assert.True(t, stderrors.Is(err, corpus.ErrManifestRead))
	})

	t.Run("output not writable", func(t *testing.T) {
		cfg := newConfig(t, writeWiki(t))
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))
		cfg.Output = filepath.Join(blocker, "export.html")

		_, err := New(cfg, nil).Export(context.Background())
		require.Error(t, err)
		assert.Equal(t, errors.CategoryFileSystem, errors.GetCategory(err))
		assert.True(t, stderrors.Is(err, ErrWriteOutput))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(newConfig(t, writeWiki(t)), nil).Export(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestExport_MetricsTextfile(t *testing.T) {
	cfg := newConfig(t, writeWiki(t))
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "wikiexport.prom")

	reg := prom.NewRegistry()
	_, err := New(cfg, nil).WithRecorder(metrics.NewPrometheusRecorder(reg), reg).Export(context.Background())
	require.NoError(t, err)

	testutil.NewFileAssertions(t, filepath.Dir(cfg.Metrics.Textfile)).
		AssertFileContains("wikiexport.prom",
			`wikiexport_export_outcomes_total{outcome="warning"} 1`,
			`wikiexport_pages_scanned{policy="manifest"} 3`,
			`wikiexport_pages_skipped_total{reason="missing"} 1`)
}
