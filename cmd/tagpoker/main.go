package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/tagpoker/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"tagpoker.hcl" help:"Configuration file" type:"path"`
	EnvFile  string `default:".env" help:"Dotenv file to load before reading the environment"`
	LogLevel string `help:"Override the configured log level (debug, info, warn, error)"`
	NoColor  bool   `help:"Disable coloured output" env:"NO_COLOR"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Classify ClassifyCmd      `cmd:"" help:"Classify a board's texture and required hand"`
	Check    CheckCmd         `cmd:"" help:"Check whether hole cards meet the minimum hand"`
	Simulate SimulateCmd      `cmd:"" help:"Deal random boards and measure the gate"`
	Serve    ServeCmd         `cmd:"" help:"Run the classification service"`
	History  HistoryCmd       `cmd:"" help:"List simulation runs saved to the database"`
}

// load reads the dotenv file and configuration, applying the log level
// override.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	if err := config.LoadDotEnv(g.EnvFile); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	logger, err := newLogger(os.Stderr, cfg.Server.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tagpoker"),
		kong.Description("Board texture classification and tight-aggressive hand gating"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	configureColor(os.Stdout, cli.NoColor)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
