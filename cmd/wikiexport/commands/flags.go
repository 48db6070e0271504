package commands

import (
	"git.home.luguber.info/inful/wikiexport/internal/config"
)

// ExportFlags override configuration values for a single run.
type ExportFlags struct {
	Path            string   `short:"p" help:"Wiki export directory (defaults to the working directory)" type:"path"`
	Output          string   `short:"o" help:"HTML file to write (defaults to export.html)"`
	Single          string   `short:"s" help:"Export one page and its descendants"`
	IncludeUnlisted bool     `name:"include-unlisted" help:"Also export pages that no .order file lists"`
	Exclude         []string `short:"e" help:"Skip pages whose relative path matches this regular expression"`
	AttachmentsPath string   `name:"attachments-path" help:"Directory .attachments links resolve against" type:"path"`
	Title           string   `help:"Title of the HTML document"`
	TOCTitle        string   `name:"toc" help:"Add a global table of contents page with this title"`
	TOCIndex        int      `name:"toc-index" help:"Position of the table of contents page" default:"-1"`
	Heading         bool     `help:"Add each page's title as a heading"`
	PathToHeading   bool     `name:"path-to-heading" help:"Print each page's path above it"`
	BreakPage       bool     `name:"break-page" help:"Start every page on a new printed page"`
	Mermaid         bool     `help:"Render mermaid diagrams"`
	MermaidScript   string   `name:"mermaid-script" help:"URL or local file that loads mermaid (defaults to a CDN)"`
	Sanitize        bool     `help:"Sanitize the generated HTML"`
	Filter          []string `help:"Only export pages with one of these frontmatter key:value tags"`
	MetricsTextfile string   `name:"metrics-textfile" help:"Write Prometheus metrics to this file"`
}

// Apply copies every flag that was set onto cfg and re-validates it.
func (f *ExportFlags) Apply(cfg *config.Config) error {
	setString(&cfg.Path, f.Path)
	setString(&cfg.Output, f.Output)
	setString(&cfg.Scan.Single, f.Single)
	setString(&cfg.AttachmentsPath, f.AttachmentsPath)
	setString(&cfg.Title, f.Title)
	setString(&cfg.Render.TOC.Title, f.TOCTitle)
	setString(&cfg.Metrics.Textfile, f.MetricsTextfile)
	setString(&cfg.Render.MermaidScript, f.MermaidScript)
	if f.TOCIndex >= 0 {
		cfg.Render.TOC.Index = f.TOCIndex
	}

	cfg.Scan.IncludeUnlisted = cfg.Scan.IncludeUnlisted || f.IncludeUnlisted
	cfg.Render.Heading = cfg.Render.Heading || f.Heading
	cfg.Render.PathToHeading = cfg.Render.PathToHeading || f.PathToHeading
	cfg.Render.BreakPage = cfg.Render.BreakPage || f.BreakPage
	cfg.Render.Mermaid = cfg.Render.Mermaid || f.Mermaid
	cfg.Render.Sanitize = cfg.Render.Sanitize || f.Sanitize

	cfg.Scan.Exclude = append(cfg.Scan.Exclude, f.Exclude...)
	cfg.Render.TagFilter = append(cfg.Render.TagFilter, f.Filter...)

	if err := config.Normalize(cfg); err != nil {
		return err
	}
	return config.Validate(cfg)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
