package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/wikiexport/internal/config"
	"git.home.luguber.info/inful/wikiexport/internal/logfields"
	"git.home.luguber.info/inful/wikiexport/internal/observability"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"wikiexport.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Export ExportCmd `cmd:"" default:"withargs" help:"Export the wiki to a single HTML document"`
	Scan   ScanCmd   `cmd:"" help:"List the pages an export would include, in order"`
	Watch  WatchCmd  `cmd:"" help:"Export, then export again whenever the wiki changes"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply(g *Global) error {
	level := "info"
	if c.Verbose {
		level = "debug"
	}
	g.Logger = observability.NewLogger(level, c.LogFormat, os.Stderr)
	slog.SetDefault(g.Logger)
	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}
	return nil
}

// loadConfig reads the configuration file. A missing file is not an error:
// the defaults apply. Logging is then rebuilt from the file, with the
// command line flags taking precedence.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		if _, statErr := os.Stat(c.Config); !errors.Is(statErr, os.ErrNotExist) {
			return nil, err
		}
		g.Logger.Debug("No configuration file, using defaults", logfields.Path(c.Config))
		cfg = config.Default()
	}

	level := string(cfg.Logging.Level)
	if c.Verbose {
		level = "debug"
	}
	format := string(cfg.Logging.Format)
	if c.LogFormat != "" {
		format = c.LogFormat
	}
	g.Logger = observability.NewLogger(level, format, os.Stderr)
	slog.SetDefault(g.Logger)
	return cfg, nil
}
