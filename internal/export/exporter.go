package export

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/wikiexport/internal/config"
	"git.home.luguber.info/inful/wikiexport/internal/corpus"
	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
	"git.home.luguber.info/inful/wikiexport/internal/links"
	"git.home.luguber.info/inful/wikiexport/internal/logfields"
	"git.home.luguber.info/inful/wikiexport/internal/metrics"
	"git.home.luguber.info/inful/wikiexport/internal/observability"
	"git.home.luguber.info/inful/wikiexport/internal/render"
	"git.home.luguber.info/inful/wikiexport/internal/toc"
	"git.home.luguber.info/inful/wikiexport/internal/wiki"
)

// Stage names reported in logs and metrics.
const (
	StageScan   = "scan"
	StageLoad   = "load"
	StageRender = "render"
	StageWrite  = "write"
)

// Skip reasons for pages dropped while loading.
const (
	skipMissing    = "missing"
	skipUnreadable = "unreadable"
)

// PageSource selects the pages of an export.
type PageSource interface {
	Scan() ([]*corpus.Page, error)
	Policy() corpus.Policy
}

// Exporter runs exports for one configuration.
type Exporter struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder metrics.Recorder
	gatherer prom.Gatherer
}

// New creates an exporter. A nil logger uses slog.Default.
func New(cfg *config.Config, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{cfg: cfg, logger: logger, recorder: metrics.NoopRecorder{}}
}

// WithRecorder reports metrics to recorder. When gatherer is set and the
// configuration names a textfile, Export writes the gathered metrics there.
func (e *Exporter) WithRecorder(recorder metrics.Recorder, gatherer prom.Gatherer) *Exporter {
	if recorder != nil {
		e.recorder = recorder
	}
	e.gatherer = gatherer
	return e
}

// Scan resolves the wiki root and returns the selected pages. The policy is
// single-file when a page name is configured, then directory when unlisted
// pages are included, otherwise manifest.
func (e *Exporter) Scan(ctx context.Context) (*ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var res *ScanResult
	err := e.stage(ctx, StageScan, func(log *slog.Logger) error {
		var err error
		res, err = e.scan(log)
		return err
	})
	return res, err
}

func (e *Exporter) scan(log *slog.Logger) (*ScanResult, error) {
	dir := e.cfg.Path
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.FileSystemError("failed to determine working directory").WithCause(err).Fatal().Build()
		}
		dir = wd
	}
	root, err := wiki.Resolve(dir)
	if err != nil {
		return nil, err
	}
	log.Info("Wiki root resolved", logfields.Path(root.ExportDir), slog.String("base", root.BaseDir))

	excludes, err := corpus.NewExcludeSet(e.cfg.Scan.Exclude)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid exclude pattern").Fatal().Build()
	}

	source := e.source(root, excludes, log)
	pages, err := source.Scan()
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.ScanError("failed to scan wiki").
			WithCause(err).
			WithContext("path", root.ExportDir).
			Build()
	}
	policy := source.Policy()
	e.recorder.SetPagesScanned(string(policy), len(pages))
	log.Info("Pages scanned", logfields.Policy(string(policy)), logfields.Count(len(pages)))
	return &ScanResult{Root: root, Policy: policy, Pages: pages}, nil
}

func (e *Exporter) source(root *wiki.Root, excludes *corpus.ExcludeSet, log *slog.Logger) PageSource {
	if e.cfg.Scan.Single != "" {
		return corpus.NewSingleFileScanner(root, e.cfg.Scan.Single, excludes, log)
	}
	return corpus.NewScanner(root, corpus.Options{
		Excludes:        excludes,
		IncludeUnlisted: e.cfg.Scan.IncludeUnlisted,
	}, log)
}

// Render scans, loads and renders the export without writing it.
func (e *Exporter) Render(ctx context.Context) (*Result, error) {
	start := time.Now()
	ctx, id := observability.WithExportID(ctx)
	result := &Result{ExportID: id, StartTime: start}

	scanned, err := e.Scan(ctx)
	if err != nil {
		return result, err
	}
	result.Policy = scanned.Policy
	result.PagesScanned = len(scanned.Pages)

	var pages []*corpus.Page
	_ = e.stage(ctx, StageLoad, func(log *slog.Logger) error {
		pages = e.load(scanned.Pages, log)
		return nil
	})
	if len(pages) == 0 {
		observability.Logger(ctx, e.logger).Warn("No pages to export", logfields.Path(scanned.Root.ExportDir))
	}

	err = e.stage(ctx, StageRender, func(log *slog.Logger) error {
		return e.render(scanned.Root, pages, result, log)
	})
	result.PagesSkipped += result.PagesScanned - len(pages)
	result.Duration = time.Since(start)
	return result, err
}

// load reads page content. Pages whose file does not exist were named by a
// manifest only and are dropped silently.
func (e *Exporter) load(pages []*corpus.Page, log *slog.Logger) []*corpus.Page {
	loaded := make([]*corpus.Page, 0, len(pages))
	for _, p := range pages {
		err := p.LoadContent()
		switch {
		case err == nil:
			loaded = append(loaded, p)
		case stderrors.Is(err, corpus.ErrPageMissing):
			log.Debug("Listed page does not exist", logfields.Path(p.RelativePath))
			e.recorder.IncPagesSkipped(skipMissing)
		default:
			log.Warn("Page could not be read and will be skipped", logfields.Path(p.RelativePath), logfields.Error(err))
			e.recorder.IncPagesSkipped(skipUnreadable)
		}
	}
	return loaded
}

func (e *Exporter) render(root *wiki.Root, pages []*corpus.Page, result *Result, log *slog.Logger) error {
	opts := e.renderOptions()
	if err := e.loadMermaid(&opts); err != nil {
		return err
	}

	tocIndex := -1
	if opts.TOCTitle != "" && len(pages) > 0 {
		pages, tocIndex = toc.NewPage(pages, opts.TOCTitle, e.cfg.Render.TOC.Index)
		if tocIndex < 0 {
			log.Info("No headings found, table of contents omitted")
		}
	}

	resolver := links.NewResolver(root, e.cfg.AttachmentsPath, log, e.recorder)
	converter := render.NewConverter(opts, resolver, links.NewRegistry(), log, e.recorder)
	results, err := converter.RenderAll(pages, tocIndex)
	if err != nil {
		return err
	}

	for _, r := range results {
		if !r.Rendered() {
			result.PagesSkipped++
			continue
		}
		result.PagesRendered++
		for _, l := range r.Links {
			if l.Kind == links.KindUnresolved {
				result.Unresolved = append(result.Unresolved, l.Original)
			}
		}
	}
	result.HTML = render.Assemble(results, opts)
	return nil
}

func (e *Exporter) renderOptions() render.Options {
	rc := e.cfg.Render
	return render.Options{
		TOCTitle:      rc.TOC.Title,
		Heading:       rc.Heading,
		PathToHeading: rc.PathToHeading,
		BreakPage:     rc.BreakPage,
		TagFilter:     rc.TagFilter,
		Mermaid:       rc.Mermaid,
		Sanitize:      rc.Sanitize,
		Title:         e.cfg.Title,
	}
}

// loadMermaid points opts at the configured mermaid script. A local file is
// inlined so the document renders diagrams offline.
func (e *Exporter) loadMermaid(opts *render.Options) error {
	script := e.cfg.Render.MermaidScript
	if !opts.Mermaid || script == "" {
		return nil
	}
	if u, err := url.Parse(script); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		opts.MermaidSrc = script
		return nil
	}
	data, err := os.ReadFile(script)
	if err != nil {
		return errors.FileSystemError("failed to read mermaid script").
			WithCause(err).
			WithContext("path", script).
			Fatal().
			Build()
	}
	opts.MermaidJS = string(data)
	return nil
}

// Export renders the wiki and writes the document to the configured output.
func (e *Exporter) Export(ctx context.Context) (*Result, error) {
	result, err := e.Render(ctx)
	if err == nil {
		err = e.stage(ctx, StageWrite, func(log *slog.Logger) error {
			return e.write(result, log)
		})
	}

	result.Duration = time.Since(result.StartTime)
	e.recorder.ObserveExportDuration(result.Duration)
	if err != nil {
		e.recorder.IncExportOutcome(metrics.ResultFatal)
	} else {
		e.recorder.IncExportOutcome(result.Outcome())
	}
	e.writeMetrics()
	return result, err
}

func (e *Exporter) write(result *Result, log *slog.Logger) error {
	out := e.cfg.Output
	if !filepath.IsAbs(out) {
		wd, err := os.Getwd()
		if err != nil {
			return errors.FileSystemError("failed to determine working directory").WithCause(err).Fatal().Build()
		}
		out = filepath.Join(wd, out)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return e.writeError(err, out)
	}
	if err := os.WriteFile(out, []byte(result.HTML), 0o644); err != nil {
		return e.writeError(err, out)
	}
	result.OutputPath = out
	log.Info("Export written", logfields.Path(out), logfields.Count(result.PagesRendered))
	return nil
}

func (e *Exporter) writeError(err error, path string) error {
	return errors.FileSystemError("failed to write export").
		WithCause(fmt.Errorf("%w: %w", ErrWriteOutput, err)).
		Fatal().
		WithContext("path", path).
		Build()
}

func (e *Exporter) writeMetrics() {
	if e.gatherer == nil || e.cfg.Metrics.Textfile == "" {
		return
	}
	if err := metrics.WriteTextfile(e.gatherer, e.cfg.Metrics.Textfile); err != nil {
		e.logger.Warn("Failed to write metrics textfile", logfields.Path(e.cfg.Metrics.Textfile), logfields.Error(err))
	}
}

// stage runs fn with a stage-scoped logger and records its duration and result.
func (e *Exporter) stage(ctx context.Context, name string, fn func(*slog.Logger) error) error {
	start := time.Now()
	log := observability.Logger(observability.WithStage(ctx, name), e.logger)
	log.Debug("Stage started")

	err := fn(log)
	d := time.Since(start)
	ms := float64(d.Microseconds()) / 1000
	e.recorder.ObserveStageDuration(name, d)
	if err != nil {
		e.recorder.IncStageResult(name, metrics.ResultFatal)
		log.Error("Stage failed", logfields.DurationMS(ms), logfields.Error(err))
		return err
	}
	e.recorder.IncStageResult(name, metrics.ResultSuccess)
	log.Debug("Stage finished", logfields.DurationMS(ms))
	return nil
}
