// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/config"
	"github.com/naka-gawa/github-dashboard/internal/gateway"
	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-dashboard",
	Short: "A dashboard of GitHub user profiles and repository rankings.",
	Long: `github-dashboard looks up a GitHub user and shows their profile statistics
together with their most forked repositories, most starred repositories and
most used languages, either in the terminal or as a browser dashboard.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./github-dashboard.yaml)")
}

// newLogger writes to stderr; --verbose lowers the level to debug.
func newLogger(cmd *cobra.Command) *log.Logger {
	level := log.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// setup loads the configuration and wires the gateway into a Dashboard.
func setup(cmd *cobra.Command, logger *log.Logger) (*config.Config, gateway.Fetcher, *usecase.Dashboard, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	fetcher, err := gateway.NewGitHubGateway(cfg.GitHub.Token, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return cfg, fetcher, usecase.NewDashboard(fetcher, logger), nil
}
