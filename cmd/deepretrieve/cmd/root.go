// Package cmd implements the deepretrieve CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/deepretrieve/deepretrieve/internal/config"
	"github.com/deepretrieve/deepretrieve/internal/storage"
	"github.com/deepretrieve/deepretrieve/internal/tui"
)

var (
	flagBackend string
	flagTheme   string
	flagDebug   bool

	cfg     *config.Config
	logger  *log.Logger
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "deepretrieve",
	Short: "Chat with your documents from the terminal",
	Long: `DeepRetrieve is a terminal client for a document question-answering
backend. Upload a PDF or image, then ask questions about it in a chat
workspace with a live retrieval-sources panel.

Run without arguments to start the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if flagBackend != "" {
			cfg.BackendURL = flagBackend
		}
		if flagTheme != "" {
			cfg.Theme = flagTheme
		}
		if flagDebug {
			cfg.Debug = true
		}
		return setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("starting TUI", "backend", cfg.BackendURL)
		return tui.Run(cfg)
	},
}

// setupLogging sends logs to a file under the state directory so the TUI
// owns the terminal; --debug routes them to stderr instead.
func setupLogging() error {
	if cfg.Debug {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
		})
		return nil
	}

	path, err := storage.NewPathManager().LogPath()
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logger = log.NewWithOptions(logFile, log.Options{ReportTimestamp: true})
	return nil
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "TUI theme: default or mocha")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log to stderr instead of the log file")
}
