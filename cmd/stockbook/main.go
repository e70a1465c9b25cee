package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"go.uber.org/zap/zapcore"

	"github.com/mamadbah2/stockbook/internal/cli"
	"github.com/mamadbah2/stockbook/internal/config"
	"github.com/mamadbah2/stockbook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	log := logger.Must(logger.NewConsole(zapcore.WarnLevel))
	defer func() { _ = log.Sync() }()

	app := &cli.App{
		DataDir:  cfg.Inventory.DataDir,
		LogDir:   cfg.Inventory.LogDir,
		Currency: cfg.Inventory.Currency,
		Out:      os.Stdout,
		Err:      os.Stderr,
		In:       os.Stdin,
		Logger:   log,
	}

	flag.StringVar(&app.DataDir, "data-dir", app.DataDir, "Directory holding products.json and sales.json")
	flag.StringVar(&app.LogDir, "log-dir", app.LogDir, "Directory holding the daily activity logs")
	flag.StringVar(&app.Currency, "currency", app.Currency, "ISO 4217 code amounts are displayed in")

	name := path.Base(os.Args[0])
	cli.Complete(name, app)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, app)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
