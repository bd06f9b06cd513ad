package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" help:"Set up and play a new game"`
	Resume  ResumeCmd        `cmd:"" help:"Resume a saved game"`
	List    ListCmd          `cmd:"" help:"List saved games"`
	Delete  DeleteCmd        `cmd:"" help:"Delete a saved game"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("scorekeeper"),
		kong.Description("Score board for party card games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
