package links

import (
	"encoding/base64"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/wikiexport/internal/corpus"
	"git.home.luguber.info/inful/wikiexport/internal/logfields"
	"git.home.luguber.info/inful/wikiexport/internal/metrics"
	"git.home.luguber.info/inful/wikiexport/internal/wiki"
)

// Kind classifies a resolved reference.
type Kind string

const (
	KindExternal   Kind = "external"   // scheme URL, mailto or in-page fragment, left alone
	KindData       Kind = "data"       // already a data URI
	KindDocument   Kind = "document"   // another wiki page, rewritten to its merged anchor
	KindEmbedded   Kind = "embedded"   // local file inlined as a data URI
	KindUnresolved Kind = "unresolved" // no file found, left alone
)

// Resolution is the outcome for one reference.
type Resolution struct {
	Original string
	URL      string // URL to render; equals Original unless rewritten
	Kind     Kind
	Path     string // resolved file, empty for external, data and unresolved references
}

// Rewritten reports whether the URL changed.
func (r Resolution) Rewritten() bool { return r.URL != r.Original }

var rootReplacer = strings.NewReplacer(":", "%3A", "#", "-", "%20", " ")

// Resolver classifies and rewrites the references of wiki pages.
type Resolver struct {
	root           *wiki.Root
	attachmentsDir string
	logger         *slog.Logger
	recorder       metrics.Recorder
}

// NewResolver creates a resolver. attachmentsDir overrides where `.attachments/...`
// references are looked up; empty keeps them relative to the wiki root. Nil
// logger and recorder fall back to slog.Default() and metrics.NoopRecorder.
func NewResolver(root *wiki.Root, attachmentsDir string, logger *slog.Logger, recorder metrics.Recorder) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Resolver{root: root, attachmentsDir: attachmentsDir, logger: logger, recorder: recorder}
}

// Resolve classifies rawURL as referenced from page.
func (r *Resolver) Resolve(rawURL string, page *corpus.Page) Resolution {
	res := Resolution{Original: rawURL, URL: rawURL}

	switch {
	case rawURL == "" || strings.HasPrefix(rawURL, "#"):
		res.Kind = KindExternal
	case strings.HasPrefix(rawURL, "data:"):
		res.Kind = KindData
	case isExternal(rawURL):
		res.Kind = KindExternal
	default:
		r.resolveLocal(&res, page)
	}

	outcome := "resolved"
	if res.Kind == KindUnresolved {
		outcome = "unresolved"
	}
	r.recorder.IncReference(string(res.Kind), outcome)
	return res
}

func (r *Resolver) resolveLocal(res *Resolution, page *corpus.Page) {
	for _, candidate := range r.candidates(res.Original, page) {
		if isFile(candidate) {
			if strings.EqualFold(filepath.Ext(candidate), ".md") {
				r.markDocument(res, page, candidate)
				return
			}
			if r.embed(res, candidate) {
				return
			}
			continue
		}
		if isFile(candidate + ".md") {
			r.markDocument(res, page, candidate+".md")
			return
		}
	}

	res.Kind = KindUnresolved
	r.logger.Warn("Invalid link", logfields.URL(res.Original), logfields.Path(page.RelativePath), logfields.Indent(2))
}

// candidates returns the filesystem paths rawURL may refer to, most literal first.
func (r *Resolver) candidates(rawURL string, page *corpus.Page) []string {
	var target string
	switch {
	case r.attachmentsDir != "" && (strings.HasPrefix(rawURL, wiki.AttachmentsDir) || strings.HasPrefix(rawURL, "/"+wiki.AttachmentsDir)):
		name := rawURL[strings.LastIndex(rawURL, "/")+1:]
		if decoded, err := url.QueryUnescape(name); err == nil {
			name = decoded
		}
		return []string{filepath.Join(r.attachmentsDir, name)}
	case strings.HasPrefix(rawURL, "/"):
		target = filepath.Join(r.root.BaseDir, filepath.FromSlash(rootReplacer.Replace(rawURL)))
	default:
		rel, _, _ := strings.Cut(rawURL, "#")
		target = filepath.Join(filepath.Dir(page.Path), filepath.FromSlash(rel))
	}

	out := []string{target}
	if decoded, err := url.PathUnescape(target); err == nil && decoded != target {
		out = append(out, decoded)
	}
	return out
}

// markDocument points res at the merged anchor of the page file at path. The
// anchor is derived from the resolved file rather than the raw URL, so encoded
// and substituted spellings land on the same anchor as the page itself.
func (r *Resolver) markDocument(res *Resolution, page *corpus.Page, path string) {
	anchor := MergedAnchor(page.Section, r.root.WikiPath(path), r.root.SubtreePrefix())
	res.Kind = KindDocument
	res.Path = path
	res.URL = "#" + anchor
	r.logger.Debug("Markdown link", logfields.URL(res.Original), logfields.Anchor(anchor), logfields.Indent(2))
}

func (r *Resolver) embed(res *Resolution, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("Failed to read linked file", logfields.Path(path), logfields.Error(err), logfields.Indent(2))
		return false
	}
	res.Kind = KindEmbedded
	res.Path = path
	res.URL = DataURI(path, data)
	return true
}

// DataURI encodes data as an image data URI typed by the extension of path.
func DataURI(path string, data []byte) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "svg" {
		ext = "svg+xml"
	}
	return "data:image/" + ext + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Rewrite resolves every link and image below doc, label content included, and
// updates their destinations in place.
func (r *Resolver) Rewrite(doc ast.Node, page *corpus.Page) []Resolution {
	r.logger.Debug("Correcting links and images", logfields.Path(page.RelativePath), logfields.Indent(2))

	var results []Resolution
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest *[]byte
		switch node := n.(type) {
		case *ast.Link:
			dest = &node.Destination
		case *ast.Image:
			dest = &node.Destination
		default:
			return ast.WalkContinue, nil
		}
		res := r.Resolve(string(*dest), page)
		if res.Rewritten() {
			*dest = []byte(res.URL)
		}
		results = append(results, res)
		return ast.WalkContinue, nil
	})
	return results
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isExternal(u string) bool {
	lower := strings.ToLower(u)
	return strings.Contains(lower, "://") || strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:")
}
