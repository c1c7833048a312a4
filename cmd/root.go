// Package cmd holds the civiceye command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/techagentng/civiceye/config"
	"github.com/techagentng/civiceye/logger"
)

var rootCmd = &cobra.Command{
	Use:           "civiceye",
	Short:         "CivicEye traffic violation reporting service",
	Long:          `CivicEye lets citizens report traffic violations with photo evidence and earn reward points once an official approves them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(plateCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and starts the logger.
func loadConfig() (*config.Config, error) {
	conf, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(conf); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return conf, nil
}
