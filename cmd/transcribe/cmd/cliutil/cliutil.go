// Package cliutil holds the setup shared by every subcommand.
package cliutil

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gemini-transcriber/internal/app/logging"
	"gemini-transcriber/internal/config"
)

const (
	FlagVerbose  = "verbose"
	FlagConfig   = "config"
	FlagLogLevel = "log-level"
	FlagLedger   = "ledger"
)

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().BoolP(FlagVerbose, "V", false, "verbose output")
	root.PersistentFlags().StringP(FlagConfig, "c", "", "settings file (YAML)")
	root.PersistentFlags().String(FlagLogLevel, "", "log level: debug, info, warn or error")
	root.PersistentFlags().String(FlagLedger, "", "SQLite file recording every upload")
}

// LoadSettings reads the settings file named by --config and applies the
// global flag overrides. Callers apply their own overrides and then Validate.
func LoadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, _ := cmd.Flags().GetString(FlagConfig)
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed(FlagLogLevel) {
		settings.LogLevel, _ = cmd.Flags().GetString(FlagLogLevel)
	}
	if cmd.Flags().Changed(FlagLedger) {
		settings.LedgerPath, _ = cmd.Flags().GetString(FlagLedger)
	}
	return settings, nil
}

// NewLogger builds the command's logger: development output with --verbose,
// JSON otherwise.
func NewLogger(cmd *cobra.Command, settings *config.Settings) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool(FlagVerbose)
	return logging.NewLogger(verbose, settings.LogLevel)
}
