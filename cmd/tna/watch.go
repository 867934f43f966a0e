package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"qdpi-hq/tna/pkg/cli"
	"qdpi-hq/tna/pkg/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-estimate a file whenever it changes",
	Long: `Estimate the cost of FILE, then keep watching it. The estimate is printed
again after every change to FILE. Changes to the config file or the
vocabulary reload the accounting service in place; a reload that fails
keeps the previous vocabulary and cost settings.

Stop with Ctrl+C.

Examples:
  tna watch notes.txt
  tna watch --config tna.yaml --format json notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	input := args[0]

	a, err := newApp(cmd, true, nil)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := cli.SetupSignalHandler(cmd.Context())
	defer cancel()

	logger := a.tel.Logger()

	var mu sync.Mutex
	estimate := func() error {
		mu.Lock()
		defer mu.Unlock()

		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		res, err := a.svc.Estimate(ctx, string(data))
		if err != nil {
			return err
		}
		return a.print(newEstimateReport(res))
	}

	reload := func() error {
		mu.Lock()
		defer mu.Unlock()

		cfg, err := reloadedConfig()
		if err != nil {
			return err
		}
		if err := a.svc.Reload(cfg); err != nil {
			return err
		}
		if err := logger.SetLevel(cfg.Telemetry.Logging.Level); err != nil {
			logger.Warn("log level not changed", "error", err)
		}
		a.cfg = cfg
		logger.Info("configuration reloaded",
			"vocabulary", cfg.Vocabulary.Path,
			"tokens_per_unit", cfg.Costs.TokensPerUnit,
		)
		return nil
	}

	if err := estimate(); err != nil {
		return cli.NewCommandError("watch", err)
	}

	paths, err := watchPaths(input, a.cfg)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	watcher, err := config.NewWatcher(paths, config.DefaultDebounceInterval, logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	inputAbs, err := filepath.Abs(input)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	err = watcher.Watch(ctx, func(changed []string) error {
		var reloadErr error
		if needsReload(changed, inputAbs) {
			reloadErr = reload()
		}
		return errors.Join(reloadErr, estimate())
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// reloadedConfig re-reads configuration the way loadConfig does on start
// and makes it the global configuration.
func reloadedConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if _, statErr := os.Stat(cfgFile); errors.Is(statErr, fs.ErrNotExist) {
		cfg, err = config.DefaultConfigWithEnvOverrides()
		if err == nil {
			config.SetConfig(cfg)
		}
	} else {
		cfg, err = config.ReloadConfig(cfgFile)
	}
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// needsReload reports whether any changed path other than the input file
// is in the burst.
func needsReload(changed []string, inputAbs string) bool {
	for _, p := range changed {
		abs, err := filepath.Abs(p)
		if err != nil || abs != inputAbs {
			return true
		}
	}
	return false
}

// watchPaths lists the input file plus the config and vocabulary files
// that exist.
func watchPaths(input string, cfg *config.Config) ([]string, error) {
	if _, err := os.Stat(input); err != nil {
		return nil, err
	}
	paths := []string{input}
	for _, p := range []string{cfgFile, cfg.Vocabulary.Path} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	return paths, nil
}
