package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/wikiexport/cmd/wikiexport/commands"
	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
	"git.home.luguber.info/inful/wikiexport/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{Stdout: os.Stdout}

	parser := kong.Must(cli,
		kong.Name("wikiexport"),
		kong.Description("Export a wiki directory tree to a single HTML document."),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
		kong.UsageOnError(),
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = kctx.Run(cli)
	errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
}
