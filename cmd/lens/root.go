package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lens/internal/config"
	"lens/internal/logging"
	"lens/internal/version"
)

var repoFlag string

var rootCmd = &cobra.Command{
	Use:   "lens",
	Short: "lens - structural code analysis engine",
	Long: `lens extracts functions, classes and methods from source trees, scores
complexity and quality per file, ranks hotspots, detects import cycles and
attributes ownership down to individual elements.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("lens version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".", "Repository root to analyze")
}

func newContext() context.Context {
	return context.Background()
}

func newLogger(cfg config.LoggingConfig) *logging.Logger {
	format := cfg.Format
	if format == "" {
		format = "human"
	}
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.LogLevel(level),
	})
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load(repoFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
