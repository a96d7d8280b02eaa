package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"leducbots.hcl" type:"path" help:"HCL config file; built-in defaults apply when it does not exist"`
	LogLevel string `default:"info" enum:"debug,info,warn,error" help:"Log level (${enum})"`
	NoColor  bool   `help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Train   TrainCmd         `cmd:"" default:"withargs" help:"Train the configured table and report the tracked seat"`
	Play    PlayCmd          `cmd:"" help:"Take a seat and play against the configured agents"`
	Weights WeightsCmd       `cmd:"" help:"Inspect a saved Q-learning checkpoint"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("leducbots"),
		kong.Description("Leduc-style poker simulator with a Q-learning agent"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
