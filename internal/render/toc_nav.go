package render

import (
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/wikiexport/internal/links"
	"git.home.luguber.info/inful/wikiexport/internal/toc"
)

// KindTOC is the node kind of a rendered table of contents.
var KindTOC = ast.NewNodeKind("TOC")

// TOCItem is one heading listed in a table of contents.
type TOCItem struct {
	Level int
	Label string
	ID    string
}

// TOCNode replaces a `[TOC]` paragraph.
type TOCNode struct {
	ast.BaseBlock
	Items []TOCItem
}

func (n *TOCNode) Kind() ast.NodeKind { return KindTOC }

func (n *TOCNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type tocTransformer struct{}

func (tocTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var items []TOCItem
	var markers []*ast.Paragraph
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			id, ok := node.AttributeString("id")
			if !ok {
				return ast.WalkSkipChildren, nil
			}
			idBytes, _ := id.([]byte)
			items = append(items, TOCItem{Level: node.Level, Label: plainText(node, source), ID: string(idBytes)})
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if isTOCMarker(node, source) {
				markers = append(markers, node)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, p := range markers {
		p.Parent().ReplaceChild(p.Parent(), p, &TOCNode{Items: items})
	}
}

func isTOCMarker(p *ast.Paragraph, source []byte) bool {
	lines := p.Lines()
	if lines.Len() != 1 {
		return false
	}
	seg := lines.At(0)
	return strings.TrimSpace(string(seg.Value(source))) == toc.Marker
}

// plainText concatenates the text below n without markup.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

type tocRenderer struct{}

func (tocRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindTOC, renderTOC)
}

func renderTOC(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*TOCNode)
	_, _ = w.WriteString("<nav class=\"toc\">\n")
	writeTOCList(w, n.Items)
	_, _ = w.WriteString("</nav>\n")
	return ast.WalkSkipChildren, nil
}

// writeTOCList writes items as nested lists. A deeper heading opens a sublist
// inside the previous item, however many levels it skips.
func writeTOCList(w util.BufWriter, items []TOCItem) {
	if len(items) == 0 {
		return
	}
	var open []int
	for _, item := range items {
		switch {
		case len(open) == 0:
			_, _ = w.WriteString("<ul>\n")
			open = append(open, item.Level)
		case item.Level > open[len(open)-1]:
			_, _ = w.WriteString("\n<ul>\n")
			open = append(open, item.Level)
		default:
			_, _ = w.WriteString("</li>\n")
			for len(open) > 1 && item.Level < open[len(open)-1] {
				open = open[:len(open)-1]
				_, _ = w.WriteString("</ul>\n</li>\n")
			}
		}
		_, _ = w.WriteString(`<li><a href="#` + html.EscapeString(item.ID) + `">` + html.EscapeString(item.Label) + "</a>")
	}
	_, _ = w.WriteString("</li>\n")
	for len(open) > 1 {
		open = open[:len(open)-1]
		_, _ = w.WriteString("</ul>\n</li>\n")
	}
	_, _ = w.WriteString("</ul>\n")
}

// retarget points the items of every TOC node in doc at the ids the same
// headings received in the real pages. texts maps the node's own ids to the
// heading text they were generated from. Items are matched in order and keep
// their id when no later real heading has the same text.
func retarget(doc ast.Node, texts map[string]string, assigned []links.Assignment) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		node, ok := n.(*TOCNode)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		cursor := 0
		for i, item := range node.Items {
			want, ok := texts[item.ID]
			if !ok {
				continue
			}
			for j := cursor; j < len(assigned); j++ {
				if assigned[j].Text == want {
					node.Items[i].ID = assigned[j].ID
					cursor = j + 1
					break
				}
			}
		}
		return ast.WalkSkipChildren, nil
	})
}
