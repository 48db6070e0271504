package commands

import (
	"context"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/wikiexport/internal/config"
	"git.home.luguber.info/inful/wikiexport/internal/export"
	"git.home.luguber.info/inful/wikiexport/internal/metrics"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	ExportFlags `embed:""`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if err := e.Apply(cfg); err != nil {
		return err
	}

	result, err := newExporter(cfg, g).Export(context.Background())
	if err != nil {
		return err
	}
	printSummary(g, result)
	return nil
}

// newExporter wires Prometheus metrics when a textfile is configured.
func newExporter(cfg *config.Config, g *Global) *export.Exporter {
	exp := export.New(cfg, g.Logger)
	if cfg.Metrics.Textfile != "" {
		reg := prom.NewRegistry()
		exp.WithRecorder(metrics.NewPrometheusRecorder(reg), reg)
	}
	return exp
}

func printSummary(g *Global, result *export.Result) {
	_, _ = fmt.Fprintf(g.Stdout, "Exported %d pages to %s in %s\n",
		result.PagesRendered, result.OutputPath, result.Duration.Round(time.Millisecond))
	if n := len(result.Unresolved); n > 0 {
		_, _ = fmt.Fprintf(g.Stdout, "%d links or images could not be resolved\n", n)
	}
}
