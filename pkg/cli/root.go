// Package cli implements the carboniq command tree.
package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/config"
	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/shell"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/sink"
)

// Options configures the command tree. Zero values fall back to the
// process streams and environment.
type Options struct {
	Version string
	Commit  string
	Date    string

	In  io.ReadCloser
	Out io.Writer
	Err io.Writer

	// Getenv reads CARBONIQ_* overrides. Defaults to os.Getenv.
	Getenv func(string) string
	// NewForm opens the interactive request form. Defaults to shell.New.
	NewForm func() (*shell.Form, error)
}

// app carries state shared by every subcommand.
type app struct {
	opts Options

	configPath string
	verbose    bool
	cfg        *config.Config
}

// skipConfig lists commands that run without loading the config file.
var skipConfig = map[string]bool{"init": true, "version": true}

// NewRootCommand builds the carboniq command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	a := &app{opts: opts}
	if a.opts.NewForm == nil {
		a.opts.NewForm = func() (*shell.Form, error) {
			return shell.New(shell.Config{Stdin: a.opts.In, Stdout: a.opts.Out})
		}
	}

	root := &cobra.Command{
		Use:   "carboniq",
		Short: "carboniq - ESG sustainability report generator",
		Long: `carboniq lays out the Carbon IQ Insights ESG report from the current
carbon metrics and saves it as a two-page PDF or an HTML preview.

Reports can also be shared by link or exported as an XLSX workbook.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.SetIn(opts.In)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file path (default: carboniq.yaml)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable debug logging")

	root.AddCommand(
		a.generateCmd(),
		a.previewCmd(),
		a.shareCmd(),
		a.workbookCmd(),
		a.schedulesCmd(),
		a.initCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads .env and the config file and installs the logger on the
// command context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logger := a.logger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))

	if a.configPath == "" {
		a.configPath = config.DefaultConfigPath()
	}
	if skipConfig[cmd.Name()] {
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("failed to load .env")
	}

	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(a.opts.Getenv); err != nil {
		return err
	}
	a.cfg = cfg
	logger.Debug().Str("config", a.configPath).Str("format", cfg.Output.Format).Msg("configuration loaded")
	return nil
}

func (a *app) logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	noColor := true
	if f, ok := a.opts.Err.(*os.File); ok {
		noColor = !rerrors.IsTTY(f)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: a.opts.Err, NoColor: noColor}).
		Level(level).
		With().Timestamp().Logger()
}

// clipboard returns the share link sink for the output stream.
func (a *app) clipboard() sink.Clipboard {
	if f, ok := a.opts.Out.(*os.File); ok {
		return sink.NewTerminalClipboard(f)
	}
	return &sink.WriterClipboard{W: a.opts.Out}
}

// Execute runs carboniq with the process arguments and returns the exit code.
// SIGINT and SIGTERM cancel the command context.
func Execute(opts Options) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand(opts)
	if err := cmd.ExecuteContext(ctx); err != nil {
		f := rerrors.DefaultFormatter()
		if opts.Err != nil {
			f.Writer = opts.Err
		}
		if re, ok := rerrors.AsReportError(err); ok {
			rerrors.AttachSuggestions(re)
		}
		f.Display(err)
		return 1
	}
	return 0
}
