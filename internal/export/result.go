package export

import (
	"time"

	"git.home.luguber.info/inful/wikiexport/internal/corpus"
	"git.home.luguber.info/inful/wikiexport/internal/metrics"
	"git.home.luguber.info/inful/wikiexport/internal/wiki"
)

// ScanResult is the page sequence selected for an export.
type ScanResult struct {
	Root   *wiki.Root
	Policy corpus.Policy
	Pages  []*corpus.Page
}

// Result describes a finished export.
type Result struct {
	ExportID string
	Policy   corpus.Policy

	// PagesScanned counts pages selected by the scan.
	PagesScanned int
	// PagesRendered counts pages present in the document, TOC page included.
	PagesRendered int
	PagesSkipped  int
	// Unresolved lists references that could not be resolved, in document order.
	Unresolved []string

	HTML       string
	OutputPath string

	StartTime time.Time
	Duration  time.Duration
}

// Outcome summarizes the run for metrics: unresolved references degrade a
// successful export to a warning.
func (r *Result) Outcome() metrics.ResultLabel {
	if len(r.Unresolved) > 0 {
		return metrics.ResultWarning
	}
	return metrics.ResultSuccess
}
