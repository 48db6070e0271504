package links

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/wikiexport/internal/corpus"
)

// MergedAnchor returns the anchor a cross-page link points at in the merged
// document. Page-relative URLs are joined to section, root-relative URLs
// replace it. The export subtree prefix is then removed so anchors stay
// export-relative, and the path is flattened to a lowercase token without
// separators or .md extension.
//
// The resolver passes the resolved file's root-relative wiki path, so section
// only matters for callers holding a raw page-relative URL.
func MergedAnchor(section, rawURL, subtreePrefix string) string {
	target, _, _ := strings.Cut(rawURL, "#")
	target = strings.ReplaceAll(target, `\`, "/")
	if !strings.HasPrefix(target, "/") {
		target = section + "/" + target
	}
	p := path.Clean("/" + target)

	if subtreePrefix != "" && (p == subtreePrefix || strings.HasPrefix(p, subtreePrefix+"/")) {
		p = p[len(subtreePrefix):]
	}
	p = strings.ToLower(strings.ReplaceAll(p, "/", ""))
	return strings.TrimSuffix(p, ".md")
}

// PageAnchor is the id a page carries in the merged document. Links resolved
// by MergedAnchor land on it.
func PageAnchor(page *corpus.Page) string {
	return MergedAnchor("", page.RelativePath, "")
}
