package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for assetsync
type Config struct {
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig holds defaults for the sync batch job. Command-line flags
// always take precedence over these values.
type SyncConfig struct {
	OutputDir     string   `mapstructure:"output_dir"`
	GitRepo       string   `mapstructure:"git_repo"`
	GitBranch     string   `mapstructure:"git_branch"`
	CommitMessage string   `mapstructure:"commit_message"`
	Mock          bool     `mapstructure:"mock"`
	Include       []string `mapstructure:"include"`
	Exclude       []string `mapstructure:"exclude"`
}

var defaultConfig = Config{
	Sync: SyncConfig{
		OutputDir: "./downloaded_assets",
		GitRepo:   ".",
		GitBranch: "main",
		Mock:      false,
	},
}

// LoadConfig reads configuration from .assetsync.yaml (current directory,
// then $HOME) with ASSETSYNC_* environment overrides. A missing config file
// is not an error; defaults apply.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("sync.output_dir", defaultConfig.Sync.OutputDir)
	v.SetDefault("sync.git_repo", defaultConfig.Sync.GitRepo)
	v.SetDefault("sync.git_branch", defaultConfig.Sync.GitBranch)
	v.SetDefault("sync.commit_message", defaultConfig.Sync.CommitMessage)
	v.SetDefault("sync.mock", defaultConfig.Sync.Mock)
	v.SetDefault("sync.include", defaultConfig.Sync.Include)
	v.SetDefault("sync.exclude", defaultConfig.Sync.Exclude)

	v.SetConfigName(".assetsync")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // Current directory
	v.AddConfigPath("$HOME") // Home directory

	v.SetEnvPrefix("ASSETSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; ignore read errors and use defaults
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &config, nil
}
