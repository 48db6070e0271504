package render

// Options control how pages are rendered and assembled.
type Options struct {
	// TOCTitle names the global TOC page. Empty means no global TOC, and
	// `[[_TOC_]]` markers render a per-page TOC instead.
	TOCTitle string
	// Heading injects each page's title, taken from its file name, as a heading.
	Heading bool
	// PathToHeading prints each page's relative path above it.
	PathToHeading bool
	// BreakPage forces a page break after every page but the last.
	BreakPage bool
	// TagFilter keeps only pages whose frontmatter carries one of these
	// "key:value" tags. Empty disables filtering.
	TagFilter []string
	// Mermaid renders ```mermaid fences as <div class="mermaid"> for client side rendering.
	Mermaid bool
	// MermaidSrc is the script URL that loads mermaid. Empty uses DefaultMermaidSrc.
	MermaidSrc string
	// MermaidJS is the mermaid library source, inlined instead of loading MermaidSrc.
	MermaidJS string
	// Sanitize runs the assembled document through an HTML sanitizer.
	Sanitize bool
	// Title is the <title> of the assembled document.
	Title string
}
