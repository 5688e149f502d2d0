package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kula-app/parking-lot/internal/command"
	"github.com/kula-app/parking-lot/internal/config"
	"github.com/kula-app/parking-lot/internal/errors"
	"github.com/kula-app/parking-lot/internal/logging"
	"github.com/kula-app/parking-lot/internal/lot"
	"github.com/kula-app/parking-lot/internal/metrics"
	"github.com/kula-app/parking-lot/internal/prompt"
	"github.com/kula-app/parking-lot/internal/session"
	"github.com/kula-app/parking-lot/internal/transcript"
)

type options struct {
	scriptPath  string
	configPath  string
	outputDir   string
	outputFile  string
	logLevel    string
	jsonLogs    bool
	metricsFile string
}

// The run function is like the main function, except that it takes in operating system fundamentals as arguments, and returns an error.
//
// If the run function finishes without an error, the session completed.
// If it returns an error, errors.GetExitCode maps it to the process exit code.
func run(ctx context.Context, args []string, getenv func(key string) string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options

	root := &cobra.Command{
		Use:   "parkinglot [script]",
		Short: "Parking lot slot allocator",
		Long: `parkinglot assigns the closest free slot to arriving cars and answers
queries about parked vehicles.

Commands are read from a script file, from piped stdin, or from an
interactive prompt when stdin is a terminal. Every result is printed and
written to the output file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			if len(positional) == 1 && opts.scriptPath == "" {
				opts.scriptPath = positional[0]
			}
			return execute(cmd, opts, getenv, stdin, stdout, stderr)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.scriptPath, "file", "f", "", "Read commands from this script file")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML configuration file")
	flags.StringVar(&opts.outputDir, "output-dir", "", "Directory the output file is written into")
	flags.StringVar(&opts.outputFile, "output-file", "", "Output file name inside the output directory")
	flags.StringVar(&opts.logLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	flags.BoolVar(&opts.jsonLogs, "json", false, "Write diagnostic logs as JSON")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when the session ends")
	root.CompletionOptions.DisableDefaultCmd = true

	root.SetArgs(args[1:])
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// Derive a context that is canceled on OS interrupt/termination so a long
	// script stops between two commands.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return root.ExecuteContext(ctx)
}

func execute(cmd *cobra.Command, opts options, getenv func(key string) string, stdin io.Reader, stdout, stderr io.Writer) error {
	ctx := cmd.Context()

	cfg, err := config.Load(opts.configPath, getenv)
	if err != nil {
		return errors.ConfigError("failed to load configuration", err)
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return errors.ConfigError("invalid configuration", err)
	}

	logger, err := logging.NewLogger(stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return errors.ConfigError("failed to create logger", err)
	}

	logger.Debug("configuration loaded",
		"output_dir", cfg.OutputDir,
		"output_file", cfg.OutputFile,
		"log_level", cfg.LogLevel,
		"color", cfg.Color,
		"halt_on_invalid_capacity", cfg.HaltOnInvalidCapacity,
		"metrics_file", cfg.MetricsFile)

	out, err := transcript.OpenFile(cfg.OutputDir, cfg.OutputFile)
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to open output file", err)
	}
	defer out.Close()

	color := cfg.Color == config.ColorAlways ||
		(cfg.Color == config.ColorAuto && logging.IsTerminal(stdout))

	parkingLot := lot.New(logger)
	executor := command.NewExecutor(parkingLot, logger, cfg.HaltOnInvalidCapacity)
	recorder := metrics.NewRecorder()

	interactive := opts.scriptPath == "" && logging.IsTerminal(stdin) && logging.IsTerminal(stdout)

	var runErr error
	switch {
	case opts.scriptPath != "":
		runErr = runScript(opts.scriptPath, func(r io.Reader) error {
			tw := transcript.New(stdout, out, color)
			return session.New(parkingLot, executor, tw, recorder, logger).Run(ctx, r)
		})
	case interactive:
		// The prompt prints results itself; the transcript only feeds the file
		tw := transcript.New(nil, out, color)
		sess := session.New(parkingLot, executor, tw, recorder, logger)
		runErr = prompt.Run(ctx, stdin, stdout, prompt.New(sess, tw.Render, cfg.Prompt))
		stats := sess.Stats()
		logger.Info("prompt closed",
			"processed", stats.Processed,
			"rejected", stats.Rejected,
			"invalid", stats.Invalid)
	default:
		tw := transcript.New(stdout, out, color)
		runErr = session.New(parkingLot, executor, tw, recorder, logger).Run(ctx, stdin)
	}

	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("failed to write metrics", "path", cfg.MetricsFile, "error", err)
			if runErr == nil {
				runErr = errors.Wrap(errors.ExitGeneralError, "failed to write metrics", err)
			}
		}
	}

	if errors.Is(runErr, context.Canceled) {
		logger.Info("session interrupted")
		return nil
	}
	return runErr
}

// applyFlags overrides configuration values with the flags set on the command line
func applyFlags(cmd *cobra.Command, opts options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("output-file") {
		cfg.OutputFile = opts.outputFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if opts.jsonLogs {
		cfg.LogFormat = logging.FormatJSON
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
}

func runScript(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.InputError("failed to open script", err)
	}
	defer f.Close()

	return fn(f)
}
