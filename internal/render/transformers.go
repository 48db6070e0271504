package render

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/wikiexport/internal/corpus"
	"git.home.luguber.info/inful/wikiexport/internal/links"
)

const maxHeadingLevel = 6

var pageStateKey = parser.NewContextKey()

// pageState carries the page being rendered through the parser context.
type pageState struct {
	page    *corpus.Page
	sizes   map[string][]imageSize
	results []links.Resolution
}

func stateFrom(pc parser.Context) *pageState {
	st, _ := pc.Get(pageStateKey).(*pageState)
	return st
}

// imageSizeTransformer applies the sizes preprocess removed from image
// destinations. It runs before links are rewritten.
type imageSizeTransformer struct{}

func (imageSizeTransformer) Transform(doc *ast.Document, _ text.Reader, pc parser.Context) {
	st := stateFrom(pc)
	if st == nil || len(st.sizes) == 0 {
		return
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		img, ok := n.(*ast.Image)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		dest := string(img.Destination)
		queue := st.sizes[dest]
		if len(queue) == 0 {
			return ast.WalkContinue, nil
		}
		size := queue[0]
		st.sizes[dest] = queue[1:]
		if size.width != "" {
			img.SetAttributeString("width", []byte(size.width))
		}
		if size.height != "" {
			img.SetAttributeString("height", []byte(size.height))
		}
		return ast.WalkContinue, nil
	})
}

// headingOffsetTransformer pushes headings down by the page's nesting level.
type headingOffsetTransformer struct{}

func (headingOffsetTransformer) Transform(doc *ast.Document, _ text.Reader, pc parser.Context) {
	st := stateFrom(pc)
	if st == nil || st.page.Level == 0 {
		return
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			h.Level = min(maxHeadingLevel, h.Level+st.page.Level)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

type linkTransformer struct {
	resolver *links.Resolver
}

func (t linkTransformer) Transform(doc *ast.Document, _ text.Reader, pc parser.Context) {
	if st := stateFrom(pc); st != nil {
		st.results = t.resolver.Rewrite(doc, st.page)
	}
}
