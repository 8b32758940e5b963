package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersionRef string
	buildCommitRef  string
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:               "kdcbs",
	Short:             "Two-level conflict-based search over control-space RRT plans",
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the entry point called from main.go.
func Execute(version, commit string) {
	buildVersionRef = version
	buildCommitRef = commit

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose structured logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $HOME/.config/kdcbs/config.yaml)")
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.config/kdcbs")
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("KDCBS")
	viper.AutomaticEnv()

	viper.SetDefault("planning_budget_seconds", 2.0)
	viper.SetDefault("goal_bias", 0.1)
	viper.SetDefault("seed", int64(1))
	viper.SetDefault("max_iterations", 50000)

	// Config file is optional; absence is not an error.
	_ = viper.ReadInConfig()
}

func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
