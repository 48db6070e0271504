package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const pageBreak = `<div style="page-break-after: always;">`

// DefaultMermaidSrc loads mermaid when no script is configured.
const DefaultMermaidSrc = "https://cdnjs.cloudflare.com/ajax/libs/mermaid/9.1.6/mermaid.min.js"

const mermaidInit = "<script>mermaid.initialize({ startOnLoad:true });</script>\n"

// Assemble joins the rendered pages into one HTML document. With BreakPage
// every page but the last rendered one is wrapped in a page break.
func Assemble(results []Result, opts Options) string {
	rendered := make([]string, 0, len(results))
	for _, r := range results {
		if r.Rendered() {
			rendered = append(rendered, r.HTML)
		}
	}

	var body strings.Builder
	for i, page := range rendered {
		if opts.BreakPage && i < len(rendered)-1 {
			body.WriteString(pageBreak + "\n" + page + "\n</div>\n")
			continue
		}
		body.WriteString(page)
		body.WriteString("\n")
	}

	content := body.String()
	if opts.Sanitize {
		content = sanitizer().Sanitize(content)
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	doc.WriteString("<title>" + html.EscapeString(opts.Title) + "</title>\n")
	if opts.Mermaid {
		doc.WriteString(mermaidScript(opts))
	}
	doc.WriteString("</head>\n<body>\n")
	doc.WriteString(content)
	doc.WriteString("</body>\n</html>\n")
	return doc.String()
}

// sanitizer keeps what the renderer produces for a wiki export: embedded
// images, ids, navigation, mermaid containers and page breaks.
func sanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowElements("nav")
	p.AllowAttrs("class").Globally()
	p.AllowStyles("page-break-after").OnElements("div")
	return p
}

func mermaidScript(opts Options) string {
	if opts.MermaidJS != "" {
		return "<script>\n" + opts.MermaidJS + "\n</script>\n" + mermaidInit
	}
	src := opts.MermaidSrc
	if src == "" {
		src = DefaultMermaidSrc
	}
	return `<script src="` + html.EscapeString(src) + "\"></script>\n" + mermaidInit
}
