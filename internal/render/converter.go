package render

import (
	"bytes"
	"html"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/wikiexport/internal/corpus"
	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
	"git.home.luguber.info/inful/wikiexport/internal/frontmatter"
	"git.home.luguber.info/inful/wikiexport/internal/links"
	"git.home.luguber.info/inful/wikiexport/internal/logfields"
	"git.home.luguber.info/inful/wikiexport/internal/metrics"
	"git.home.luguber.info/inful/wikiexport/internal/toc"
)

// Reasons a page is left out of the document.
const (
	SkipEmpty     = "empty"
	SkipTagFilter = "tag_filter"
	SkipNoTOC     = "no_headings"
)

// Result is the outcome of rendering one page.
type Result struct {
	Page *corpus.Page
	HTML string
	// Skipped names why the page was left out. Empty when it was rendered.
	Skipped string
	Links   []links.Resolution
}

// Rendered reports whether the page contributes to the document.
func (r Result) Rendered() bool { return r.Skipped == "" }

// Converter renders the pages of one export. It is not safe for concurrent use.
type Converter struct {
	opts     Options
	registry *links.Registry
	md       goldmark.Markdown
	logger   *slog.Logger
	recorder metrics.Recorder

	footnotePrefix []byte
}

// NewConverter builds a converter that rewrites references with resolver and
// draws heading ids from registry.
func NewConverter(opts Options, resolver *links.Resolver, registry *links.Registry, logger *slog.Logger, recorder metrics.Recorder) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	c := &Converter{
		opts:     opts,
		registry: registry,
		logger:   logger,
		recorder: recorder,
	}

	transformers := []util.PrioritizedValue{
		util.Prioritized(imageSizeTransformer{}, 100),
		util.Prioritized(headingOffsetTransformer{}, 150),
		util.Prioritized(linkTransformer{resolver: resolver}, 200),
		util.Prioritized(tocTransformer{}, 900),
	}
	nodeRenderers := []util.PrioritizedValue{
		util.Prioritized(tocRenderer{}, 500),
	}
	if opts.Mermaid {
		transformers = append(transformers, util.Prioritized(mermaidTransformer{}, 300))
		nodeRenderers = append(nodeRenderers, util.Prioritized(mermaidRenderer{}, 500))
	}

	c.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.DefinitionList,
			extension.NewFootnote(extension.WithFootnoteIDPrefixFunction(func(ast.Node) []byte {
				return c.footnotePrefix
			})),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
			parser.WithBlockParsers(headingBlockParsers()...),
			parser.WithASTTransformers(transformers...),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(nodeRenderers...),
		),
	)
	return c
}

// RenderAll renders pages in order. The page at tocIndex, if any, is the
// global TOC page: it is rendered last so its navigation can link to the
// heading ids the other pages received.
func (c *Converter) RenderAll(pages []*corpus.Page, tocIndex int) ([]Result, error) {
	for _, p := range pages {
		c.registry.Reserve(links.PageAnchor(p))
	}

	results := make([]Result, len(pages))
	for i, p := range pages {
		if i == tocIndex {
			continue
		}
		res, err := c.RenderPage(p)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}

	if tocIndex >= 0 && tocIndex < len(pages) {
		res, err := c.renderTOCPage(pages[tocIndex])
		if err != nil {
			return nil, err
		}
		results[tocIndex] = res
	}
	return results, nil
}

// RenderPage renders a single page with the export-wide heading ids.
func (c *Converter) RenderPage(page *corpus.Page) (Result, error) {
	res := Result{Page: page}
	c.logger.Info("Converting page", logfields.Path(page.RelativePath), logfields.Indent(1))

	if len(page.Content) == 0 {
		c.logger.Warn("File is empty and will be skipped", logfields.Path(page.RelativePath), logfields.Indent(1))
		return c.skip(res, SkipEmpty), nil
	}

	fm, body, had, err := frontmatter.Split(page.Content)
	if err != nil {
		// A dangling delimiter is plain markdown.
		body, had = page.Content, false
	}
	if len(c.opts.TagFilter) > 0 && !c.keepByTags(page, fm, had) {
		return c.skip(res, SkipTagFilter), nil
	}

	out, results, err := c.convert(page, body, c.registry.ForPage(page.Name()), nil)
	if err != nil {
		return res, err
	}
	res.HTML = c.decorate(page, out, false)
	res.Links = results
	return res, nil
}

func (c *Converter) renderTOCPage(page *corpus.Page) (Result, error) {
	res := Result{Page: page}
	c.logger.Info("Converting table of contents", logfields.Path(page.RelativePath), logfields.Indent(1))

	private := links.NewRegistry()
	assigned := c.registry.Assigned()
	out, _, err := c.convert(page, page.Content, private.ForPage(page.Name()), func(doc ast.Node) {
		texts := make(map[string]string)
		for _, a := range private.Assigned() {
			texts[a.ID] = a.Text
		}
		retarget(doc, texts, assigned)
	})
	if err != nil {
		return res, err
	}

	out = toc.RemoveDuplicateHeadings(out)
	if strings.TrimSpace(out) == "" {
		return c.skip(res, SkipNoTOC), nil
	}
	res.HTML = c.decorate(page, out, true)
	return res, nil
}

func (c *Converter) convert(page *corpus.Page, body []byte, ids parser.IDs, inspect func(ast.Node)) (string, []links.Resolution, error) {
	md, sizes := preprocess(string(body), c.opts.TOCTitle != "")
	src := []byte(md)

	st := &pageState{page: page, sizes: sizes}
	pc := newRefContext(parser.NewContext(parser.WithIDs(ids)))
	pc.Set(pageStateKey, st)
	c.footnotePrefix = []byte(links.PageAnchor(page) + "-")

	doc := c.md.Parser().Parse(text.NewReader(src), parser.WithContext(pc))
	if inspect != nil {
		inspect(doc)
	}

	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, src, doc); err != nil {
		return "", nil, errors.RenderError("failed to render page").
			WithCause(err).
			WithContext("path", page.RelativePath).
			Build()
	}
	return buf.String(), st.results, nil
}

func (c *Converter) keepByTags(page *corpus.Page, fm []byte, had bool) bool {
	if !had {
		c.logger.Info("Page has no frontmatter and is filtered out", logfields.Path(page.RelativePath), logfields.Indent(1))
		return false
	}
	fields, err := frontmatter.ParseYAML(fm)
	if err != nil {
		c.logger.Warn("Unreadable frontmatter, page is filtered out",
			logfields.Path(page.RelativePath), logfields.Error(err), logfields.Indent(1))
		return false
	}
	if !frontmatter.MatchesAny(frontmatter.Tags(fields), c.opts.TagFilter) {
		c.logger.Info("Page does not match tag filter", logfields.Path(page.RelativePath), logfields.Indent(1))
		return false
	}
	return true
}

func (c *Converter) skip(res Result, reason string) Result {
	res.Skipped = reason
	c.recorder.IncPagesSkipped(reason)
	return res
}

// decorate prefixes a rendered page with its anchor and the optional path and
// title headings.
func (c *Converter) decorate(page *corpus.Page, body string, isTOC bool) string {
	out := `<a id="` + html.EscapeString(links.PageAnchor(page)) + "\">&nbsp;</a>\n" + body

	if c.opts.PathToHeading {
		out = "<b>" + html.EscapeString(decode(page.RelativePath)) + "</b>\n" + out
	}
	title := html.EscapeString(PageTitle(page))
	if isTOC && !c.opts.Heading {
		out = "<h1>" + title + "</h1>\n" + out
	}
	if c.opts.Heading {
		level := strconv.Itoa(min(maxHeadingLevel, page.Level+1))
		out = "<h" + level + ">" + title + "</h" + level + ">\n" + out
	}
	return out
}

// PageTitle derives a readable title from the page's file name: the name is
// percent-decoded and dashes become spaces.
func PageTitle(page *corpus.Page) string {
	return strings.ReplaceAll(decode(page.Name()), "-", " ")
}

func decode(s string) string {
	if d, err := url.QueryUnescape(s); err == nil {
		return d
	}
	return s
}
