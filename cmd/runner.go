package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotifeel/internal/shared"
	"github.com/desertthunder/spotifeel/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	logger *log.Logger
	output io.Writer
	styles *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger *log.Logger
	Output io.Writer
	Styles *ui.Palette
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Styles == nil {
		opts.Styles = ui.DefaultPalette()
	}

	return &Runner{
		logger: opts.Logger,
		output: opts.Output,
		styles: opts.Styles,
	}
}

// register returns all top-level CLI commands.
func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		serveCommand(r),
		configCommand(r),
	}
}

// writePlain writes formatted text to the runner's output writer.
func (r *Runner) writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(r.output, format, args...)
	return err
}
