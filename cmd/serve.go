package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the browser dashboard",
	Long:  `Starts an HTTP server rendering the profile dashboard with charts for any GitHub user.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger := newLogger(cmd)

		cfg, _, dashboard, err := setup(cmd, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		server := web.NewServer(dashboard, cfg.Server.DefaultLogin, logger)
		if err := server.ListenAndServe(ctx, addr); err != nil {
			fmt.Fprintf(os.Stderr, "Server stopped: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address (overrides server.addr)")
}
