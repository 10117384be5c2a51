package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/mcotp/internal/config"
	"github.com/llehouerou/mcotp/internal/logging"
)

// Runner holds the dependencies of the CLI commands and provides a method
// for each command action.
type Runner struct {
	config *config.Config
	logger *log.Logger
	output io.Writer
	now    func() time.Time
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *config.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = &config.Config{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(nil, opts.Config.LogLevel)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		now:    time.Now,
	}
}

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		playCommand(r),
		stateCommand(r),
		catalogCommand(r),
	}
}

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Resume the saved queue, or start shuffling the collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "item",
				Usage: `Play an item right away: "band:<id>", "album:<id>", "song:<id>", "year:<y>", "decade:<y>" or "location:<id>"`,
			},
		},
		Action: r.Play,
	}
}

func stateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "state",
		Usage: "Inspect the queue saved between runs",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the saved queue",
				Action: r.StateShow,
			},
			{
				Name:   "clear",
				Usage:  "Forget the saved queue",
				Action: r.StateClear,
			},
		},
	}
}

func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Inspect the music catalog",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Print band, album and song counts and the decades present",
				Action: r.CatalogStats,
			},
		},
	}
}

func (r *Runner) writeJSON(data any) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	output = append(output, '\n')
	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeLine(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
