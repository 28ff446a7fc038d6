package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm/dilint/internal/config"
	"github.com/pthm/dilint/internal/logging"
	"github.com/pthm/dilint/internal/ui"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	format     string
	configPath string
	logLevel   string

	globalUI *ui.UI
	logger   = slog.Default()

	// explicitConfig is set when --config or $DILINT_CONFIG names a file.
	explicitConfig *config.Config
)

// RootCmd is the dilint command tree.
var RootCmd = &cobra.Command{
	Use:   "dilint",
	Short: "A linter for dependency inversion in Go code",
	Long: `dilint reports code that builds its own collaborators instead of
receiving them.

It flags composite literals and new(T) calls that construct concrete
struct types (DI0002) and constructors that take more parameters than
allowed (DI0003). Options are read from the nearest .dilint.yaml.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", ui.FormatTerminal, "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Options file (default: nearest .dilint.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// setup resolves output mode, options file and logger before any command runs.
// Flags win over the environment, which wins over the options file.
func setup(cmd *cobra.Command, args []string) error {
	if err := ui.ValidateFormat(format); err != nil {
		return err
	}
	globalUI = ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)

	cfg, explicit, ignored, err := loadConfig()
	if err != nil {
		return err
	}
	if explicit {
		explicitConfig = cfg
	}

	cfg.ApplyEnv()
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}
	logger = logging.New(cmd.ErrOrStderr(), cfg.Logging.Format, level)

	if ignored != nil {
		logger.Warn("ignoring options file", "error", ignored)
	}
	if cfg.Path != "" {
		logger.Debug("using options file", "path", cfg.Path)
	}
	return nil
}

// loadConfig reads the options file named by --config or $DILINT_CONFIG, or
// the nearest one above the working directory. The bool reports whether the
// file was named explicitly. A named file that fails to load is an error; a
// discovered one falls back to the defaults and is returned as ignored, so
// commands such as init --force still run next to a broken file.
func loadConfig() (cfg *config.Config, explicit bool, ignored, err error) {
	path := configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	if path != "" {
		named, err := config.Load(path)
		if err != nil {
			return nil, false, nil, err
		}
		return named, true, nil, nil
	}

	found, err := config.Find(".")
	if errors.Is(err, config.ErrNotFound) {
		return config.Default(), false, nil, nil
	}
	if err != nil {
		return config.Default(), false, fmt.Errorf("searching for options file: %w", err), nil
	}

	cfg, err = config.Load(found)
	if err != nil {
		return config.Default(), false, err, nil
	}
	return cfg, false, nil, nil
}

// optionsProvider returns the provider the analyzer reads options from.
func optionsProvider() config.Provider {
	if explicitConfig != nil {
		return explicitConfig
	}
	return config.NewCache(logger)
}

// GetUI returns the UI configured for the running command.
func GetUI() *ui.UI {
	if globalUI == nil {
		globalUI = ui.New(os.Stdout, os.Stderr, format)
	}
	return globalUI
}
