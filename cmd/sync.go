/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/fulmenhq/assetsync/internal/download"
	"github.com/fulmenhq/assetsync/internal/gitrepo"
	"github.com/fulmenhq/assetsync/internal/syncer"
	"github.com/fulmenhq/assetsync/pkg/config"
	"github.com/fulmenhq/assetsync/pkg/exitcode"
	"github.com/fulmenhq/assetsync/pkg/logger"
	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download manifest assets and publish them to a git repository",
	Long: `Sync runs the whole batch: load the JSON manifest (from --json-file or
--json-string), download every asset it lists into the output directory,
then stage, commit and push the new files on the target branch.

Per-asset failures are skipped; input and publish failures fail the run.
Defaults can be set in .assetsync.yaml or via ASSETSYNC_* environment
variables; flags always win.`,
	RunE:          runSync,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	syncCmd.Flags().String("json-file", "", "Path to JSON file containing assets")
	syncCmd.Flags().String("json-string", "", "JSON string containing assets")
	syncCmd.Flags().String("output-dir", "./downloaded_assets", "Directory to save downloaded assets")
	syncCmd.Flags().String("git-repo", ".", "Git repository path (empty disables publishing)")
	syncCmd.Flags().String("git-branch", "main", "Git branch name")
	syncCmd.Flags().String("commit-message",
		fmt.Sprintf("Update assets %s", time.Now().Format("2006-01-02 15:04:05")),
		"Git commit message")
	syncCmd.Flags().Bool("mock", false, "Mock downloads for testing")
	syncCmd.Flags().StringSlice("include", nil, "Only download assets whose filename matches a glob")
	syncCmd.Flags().StringSlice("exclude", nil, "Skip assets whose filename matches a glob")
	syncCmd.Flags().Bool("validate", false, "Schema-check the manifest before processing (warn only)")
}

func runSync(cmd *cobra.Command, _ []string) error {
	opts := syncOptions(cmd)

	s := syncer.New(
		download.New(download.NewRealFetcher(), opts.Mock),
		gitrepo.NewPublisher(),
	)

	if !s.Run(opts) {
		logger.Error("Asset download or Git operations failed",
			logger.String("class", exitcode.String(exitcode.GeneralError)))
		return errors.New("asset download or git operations failed")
	}

	logger.Info("Asset download and Git operations completed successfully")
	return nil
}

// syncOptions layers flag values over the config-file/env defaults. A flag
// the user set always wins; otherwise the loaded config decides.
func syncOptions(cmd *cobra.Command) syncer.Options {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("Failed to load configuration, using defaults", logger.Err(err))
		cfg = &config.Config{}
		cfg.Sync.GitRepo = "."
	}

	flags := cmd.Flags()
	stringOpt := func(name, fromConfig string) string {
		if flags.Changed(name) || fromConfig == "" {
			v, _ := flags.GetString(name)
			return v
		}
		return fromConfig
	}

	jsonFile, _ := flags.GetString("json-file")
	jsonString, _ := flags.GetString("json-string")
	mock, _ := flags.GetBool("mock")
	validate, _ := flags.GetBool("validate")
	include, _ := flags.GetStringSlice("include")
	exclude, _ := flags.GetStringSlice("exclude")

	gitRepo, _ := flags.GetString("git-repo")
	if !flags.Changed("git-repo") {
		gitRepo = cfg.Sync.GitRepo
	}
	if len(include) == 0 {
		include = cfg.Sync.Include
	}
	if len(exclude) == 0 {
		exclude = cfg.Sync.Exclude
	}

	return syncer.Options{
		JSONFile:      jsonFile,
		JSONString:    jsonString,
		OutputDir:     stringOpt("output-dir", cfg.Sync.OutputDir),
		GitRepo:       gitRepo,
		GitBranch:     stringOpt("git-branch", cfg.Sync.GitBranch),
		CommitMessage: stringOpt("commit-message", cfg.Sync.CommitMessage),
		Mock:          mock || cfg.Sync.Mock,
		Include:       include,
		Exclude:       exclude,
		Validate:      validate,
	}
}
