package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/envprobe/internal/runner"
	"github.com/ajitpratap0/envprobe/pkg/config"
	"github.com/ajitpratap0/envprobe/pkg/logger"
	"github.com/ajitpratap0/envprobe/pkg/montecarlo"
	"github.com/ajitpratap0/envprobe/pkg/observability"
	"github.com/ajitpratap0/envprobe/pkg/sysinfo"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "envprobe",
		Short: "envprobe - verify a development host and its numeric stack",
		Long: `envprobe reports host system information (OS, CPU, memory, disks) and
smoke-tests the numeric libraries linked into the binary: array reductions,
tabular operations and a Monte-Carlo estimate of pi.

Run without arguments for the full report. Any failure other than an
unreadable partition aborts the run with exit status 1.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return probe(cmd, configFile, nil)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "Path to a YAML configuration file")
	flags.StringP("format", "f", config.FormatText, "Output format (text, json, yaml)")
	flags.Int("iterations", montecarlo.DefaultIterations, "Number of Monte-Carlo draws for the pi estimate")
	flags.Duration("cpu-interval", sysinfo.DefaultSampleInterval, "Sampling window for per-core CPU utilization")
	flags.String("log-level", "error", "Log level (debug, info, warn, error)")
	flags.String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	flags.Bool("trace", false, "Export stage spans to stderr")
	flags.String("color", config.ColorAuto, "Colorize the text report (auto, always, never)")
	root.Flags().StringSlice("sections", []string{config.SectionSystem, config.SectionStack, config.SectionPi},
		"Sections to run, in fixed order (system, stack, pi)")

	for _, sc := range []struct {
		name, short string
	}{
		{config.SectionSystem, "Report OS identity, CPU, memory and disks"},
		{config.SectionStack, "Report library versions and run the tabular and array smoke tests"},
		{config.SectionPi, "Estimate pi by Monte-Carlo sampling"},
	} {
		section := sc.name
		root.AddCommand(&cobra.Command{
			Use:   section,
			Short: sc.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return probe(cmd, configFile, []string{section})
			},
		})
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "envprobe v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	return root
}

// probe loads the configuration and runs the report. A non-nil sections
// overrides the configured ones.
func probe(cmd *cobra.Command, configFile string, sections []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if sections != nil {
		cfg.Report.Sections = sections
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Encoding:    cfg.Logging.Encoding,
		Development: cfg.Logging.Development,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.With(zap.String("version", version))

	tracing, err := observability.NewTracing(observability.TracingConfig{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: version,
		Writer:         cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := tracing.Shutdown(context.Background()); err != nil {
			log.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	r, err := runner.New(cfg, cmd.OutOrStdout(),
		runner.WithLogger(log),
		runner.WithTracing(tracing))
	if err != nil {
		return err
	}

	log.Debug("starting probe",
		zap.Strings("sections", cfg.Report.Sections),
		zap.String("format", cfg.Report.Format),
		zap.Int("iterations", cfg.Report.Iterations))

	_, err = r.Run(cmd.Context())
	return err
}
