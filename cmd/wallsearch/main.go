package main

import (
	"github.com/alecthomas/kong"
	"github.com/dixieflatline76/wallsearch/util/log"
)

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"Path to the config file (default ~/.wallsearch/config.yaml)." type:"path"`
	Debug  bool   `help:"Print debug logging."`
}

var cli struct {
	Globals

	Query   QueryCmd   `cmd:"" help:"Search Wallhaven and print the result list."`
	Apply   ApplyCmd   `cmd:"" help:"Download a wallpaper and set it as the desktop background."`
	Detect  DetectCmd  `cmd:"" help:"Print the resolution used for \"auto\" searches."`
	Serve   ServeCmd   `cmd:"" help:"Run the launcher bridge."`
	Version VersionCmd `cmd:"" help:"Print the version and optionally check for updates."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("wallsearch"),
		kong.Description("Search Wallhaven from a launcher and apply the chosen wallpaper."),
		kong.UsageOnError(),
	)
	log.SetDebug(cli.Debug)

	if err := ctx.Run(&cli.Globals); err != nil {
		log.Printf("%s failed: %v", ctx.Command(), err)
		ctx.Exit(1)
	}
}
