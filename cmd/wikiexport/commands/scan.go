package commands

import (
	"context"
	"fmt"
	"strings"
)

// ScanCmd implements the 'scan' command.
type ScanCmd struct {
	ExportFlags `embed:""`
}

func (s *ScanCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if err := s.Apply(cfg); err != nil {
		return err
	}

	res, err := newExporter(cfg, g).Scan(context.Background())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "%d pages (%s policy) in %s\n", len(res.Pages), res.Policy, res.Root.ExportDir)
	for _, p := range res.Pages {
		_, _ = fmt.Fprintf(g.Stdout, "%s%s\n", strings.Repeat("  ", p.Level), p.RelativePath)
	}
	return nil
}
