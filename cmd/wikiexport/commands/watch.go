package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/wikiexport/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ExportFlags `embed:""`
	Debounce    time.Duration `help:"Quiet period before re-exporting after a change"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if err := w.Apply(cfg); err != nil {
		return err
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exp := newExporter(cfg, g)
	result, err := exp.Export(ctx)
	if err != nil {
		return err
	}
	printSummary(g, result)

	dir := cfg.Path
	if dir == "" {
		dir = "."
	}
	watcher, err := watch.New(dir, cfg.Watch.Debounce, func(ctx context.Context) error {
		result, err := exp.Export(ctx)
		if err == nil {
			printSummary(g, result)
		}
		return err
	}, g.Logger)
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
