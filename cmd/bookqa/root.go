package main

import (
	"errors"
	"fmt"
	"io"

	"bookqa/internal/config"
	"bookqa/internal/logging"

	"github.com/spf13/cobra"
)

// errScenariosFailed makes the process exit 1 without printing anything
// beyond the run summary.
var errScenariosFailed = errors.New("one or more scenarios failed")

type rootFlags struct {
	logLevel  string
	logFile   string
	configDir string

	closeLog io.Closer
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "bookqa",
		Short:         "DemoQA book store test suite",
		Long:          `bookqa runs the API, browser and end-to-end checks of the DemoQA account and book store application.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			closer, err := logging.Setup(flags.logLevel, flags.logFile)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			flags.closeLog = closer
			config.LoadEnv()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if flags.closeLog != nil {
				_ = flags.closeLog.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log", "info", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "also append JSON logs to this file")
	cmd.PersistentFlags().StringVar(&flags.configDir, "config-dir", "config", "directory holding common.properties")

	cmd.AddCommand(
		newRunCmd(flags),
		newConfigCmd(flags),
		newListCmd(),
		newUserCmd(flags),
		newRunsCmd(flags),
	)
	return cmd
}

// loadConfig reads and validates the property files.
func (f *rootFlags) loadConfig() (config.Run, error) {
	cfg, err := config.Load(f.configDir)
	if err != nil {
		return config.Run{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Run{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
