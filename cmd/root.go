/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"os"

	"github.com/fulmenhq/assetsync/pkg/buildinfo"
	"github.com/fulmenhq/assetsync/pkg/exitcode"
	"github.com/fulmenhq/assetsync/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assetsync",
		Short: "Download manifest-listed assets and publish them into a git repository",
		Long: `Assetsync is a single-shot batch tool: it reads a JSON manifest of
externally hosted assets, downloads each one into a local directory, and
commits (and where possible pushes) the results into a git working tree.
Built for scheduled pipelines that mirror build artifacts into a tracked
repository.

Examples:
   assetsync sync --json-file assets.json            # Download and publish
   assetsync sync --json-string '[...]' --mock       # Placeholder downloads
   assetsync validate --json-file assets.json        # Schema-check a manifest
   assetsync version                                 # Show version`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Wire Cobra's built-in --version using the binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("assetsync {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(syncCmd)
	cmd.AddCommand(validateCmd)
	cmd.AddCommand(versionCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags. The log format
// flags are read from the root's persistent set; subcommands define their own
// local --json output flags which must not affect log formatting.
func initializeLogger(cmd *cobra.Command) {
	flags := cmd.Root().PersistentFlags()
	logLevelStr, _ := flags.GetString("log-level")
	jsonLogs, _ := flags.GetBool("json")
	noColor, _ := flags.GetBool("no-color")

	_ = logger.Initialize(logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "assetsync",
	})
}
