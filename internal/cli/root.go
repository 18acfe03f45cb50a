// Package cli implements briefing-cli: generate, render and share sales
// briefings from a terminal.
package cli

import (
	"fmt"
	"io"
	"os"

	"sales-briefing/internal/common/config"
	"sales-briefing/internal/common/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

// NewRootCmd builds the command tree. Tests build a fresh tree per case.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "briefing-cli",
		Short: "Generate and share AI sales briefings",
		Long: `briefing-cli generates a structured sales briefing for a prospective client
through the configured chat-completion gateway, renders stored briefings and
composes outreach links for a contact.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: configs/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newContactCmd())
	root.AddCommand(newSchemaCmd())
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// newLogger writes to stderr so stdout stays clean for briefing output.
func newLogger(cfg *config.Config) logger.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	format := "console"
	if cfg != nil && cfg.Logging.Format == "json" {
		format = "json"
	}
	return logger.NewStructured(level, format, "stderr")
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
