package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/llehouerou/mcotp/internal/config"
	"github.com/llehouerou/mcotp/internal/errmsg"
	"github.com/llehouerou/mcotp/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(errmsg.Format(errmsg.OpConfigLoad, err))
		os.Exit(1)
	}

	logger := logging.NewLogger(os.Stderr, cfg.LogLevel)
	runner := NewRunner(RunnerOpts{Config: cfg, Logger: logger})

	app := &cli.Command{
		Name:     "mcotp",
		Usage:    "Endless music from your collection, one mode at a time",
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		stop()
		logger.Fatal("command failed", "err", err)
	}
}
