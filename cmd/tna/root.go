package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"qdpi-hq/tna/pkg/cli"
	"qdpi-hq/tna/pkg/config"
	"qdpi-hq/tna/pkg/processing"
	"qdpi-hq/tna/pkg/telemetry"
)

const defaultConfigFile = "tna.yaml"

var (
	// Global flags
	cfgFile      string
	verbose      bool
	outputFormat string
	dumpMetrics  bool
)

var rootCmd = &cobra.Command{
	Use:   "tna",
	Short: "tna - token accounting for QDPI vocabularies",
	Long: `tna tokenizes text against a QDPI vocabulary and estimates its cost.

Cost is the token count divided by costs.tokens_per_unit (default 100), kept
as an exact fraction and never rounded.

Configuration is read from tna.yaml when present. Every setting can be
overridden with TNA_SECTION_FIELD environment variables, for example
TNA_COSTS_TOKENS_PER_UNIT=1000.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", string(cli.FormatText), "output format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "write Prometheus metrics to stderr on exit")
}

// loadConfig reads the config file. A missing default file falls back to
// the built-in defaults; a missing file named with --config is an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit := cmd.Flag("config") != nil && cmd.Flag("config").Changed

	var (
		cfg *config.Config
		err error
	)
	if _, statErr := os.Stat(cfgFile); errors.Is(statErr, fs.ErrNotExist) && !explicit {
		cfg, err = config.DefaultConfigWithEnvOverrides()
	} else {
		cfg, err = config.LoadConfigWithEnvOverrides(cfgFile)
	}
	if err != nil {
		return nil, cli.NewConfigError("", err)
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	config.SetConfig(cfg)
	return cfg, nil
}

// app holds what a command needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	tel    *telemetry.Telemetry
	svc    *processing.Service
	out    io.Writer
	errOut io.Writer
	format cli.OutputFormat
}

// newApp loads configuration, builds telemetry and, if withService is set,
// the accounting service. mutate may adjust the config before the service
// is built.
func newApp(cmd *cobra.Command, withService bool, mutate func(*config.Config)) (*app, error) {
	format, err := cli.ParseOutputFormat(outputFormat)
	if err != nil {
		return nil, cli.NewConfigError("format", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(cfg)
	}

	tel, err := telemetry.New(&cfg.Telemetry, cmd.ErrOrStderr())
	if err != nil {
		return nil, cli.NewConfigError("telemetry", err)
	}

	a := &app{
		cfg:    cfg,
		tel:    tel,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		format: format,
	}

	if withService {
		svc, err := processing.NewService(cfg, processing.Options{
			Logger:  tel.Logger(),
			Metrics: tel.Metrics(),
			Tracer:  tel.Tracer(),
		})
		if err != nil {
			_ = tel.Shutdown(context.Background())
			return nil, err
		}
		a.svc = svc
	}

	return a, nil
}

// print renders v in the selected output format.
func (a *app) print(v any) error {
	return cli.NewFormatter(a.format).FormatTo(a.out, v)
}

// close flushes telemetry and, with --metrics, dumps the registry.
func (a *app) close() {
	if dumpMetrics {
		if err := a.tel.Metrics().WriteText(a.errOut); err != nil {
			a.tel.Logger().Warn("metrics dump failed", "error", err)
		}
	}
	if err := a.tel.Shutdown(context.Background()); err != nil {
		a.tel.Logger().Warn("telemetry shutdown failed", "error", err)
	}
}
