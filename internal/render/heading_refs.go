package render

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// headingRefParser wraps a heading block parser so that every closed heading
// becomes a link reference: `[Heading Text]` then links to the heading id.
type headingRefParser struct {
	parser.BlockParser
}

func (p headingRefParser) SetOption(name parser.OptionName, value any) {
	if so, ok := p.BlockParser.(parser.SetOptioner); ok {
		so.SetOption(name, value)
	}
}

func (p headingRefParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	p.BlockParser.Close(node, reader, pc)

	refs, ok := pc.(*refContext)
	if !ok {
		return
	}
	id, ok := node.AttributeString("id")
	if !ok {
		return
	}
	lines := node.Lines()
	if lines.Len() == 0 {
		return
	}
	seg := lines.At(lines.Len() - 1)
	label := bytes.TrimSpace(seg.Value(reader.Source()))
	if len(label) == 0 {
		return
	}
	dest, _ := id.([]byte)
	refs.addHeading(parser.NewReference(label, append([]byte("#"), dest...), nil))
}

// headingBlockParsers replace goldmark's heading parsers. Their priorities sit
// just ahead of the defaults so they open every heading first.
func headingBlockParsers() []util.PrioritizedValue {
	return []util.PrioritizedValue{
		util.Prioritized(headingRefParser{parser.NewSetextHeadingParser()}, 99),
		util.Prioritized(headingRefParser{parser.NewATXHeadingParser()}, 599),
	}
}

// refContext resolves heading references after the ones defined in the
// document, so an explicit `[label]: url` always wins over a heading.
type refContext struct {
	parser.Context
	headings map[string]parser.Reference
}

func newRefContext(pc parser.Context) *refContext {
	return &refContext{Context: pc, headings: make(map[string]parser.Reference)}
}

func (c *refContext) addHeading(ref parser.Reference) {
	key := util.ToLinkReference(ref.Label())
	if _, ok := c.headings[key]; !ok {
		c.headings[key] = ref
	}
}

func (c *refContext) Reference(label string) (parser.Reference, bool) {
	if ref, ok := c.Context.Reference(label); ok {
		return ref, true
	}
	ref, ok := c.headings[label]
	return ref, ok
}

func (c *refContext) References() []parser.Reference {
	refs := c.Context.References()
	for key, ref := range c.headings {
		if _, ok := c.Context.Reference(key); !ok {
			refs = append(refs, ref)
		}
	}
	return refs
}
