package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

var rateLimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Shows the remaining GitHub API quota",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		_, fetcher, _, err := setup(cmd, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		limits, err := fetcher.FetchRateLimit(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch rate limits: %v\n", err)
			os.Exit(1)
		}

		data := pterm.TableData{{"Resource", "Limit", "Remaining", "Resets In"}}
		for _, rate := range []domain.Rate{limits.Core, limits.GraphQL} {
			data = append(data, []string{
				rate.Resource,
				strconv.Itoa(rate.Limit),
				strconv.Itoa(rate.Remaining),
				time.Until(rate.Reset).Round(time.Second).String(),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print rate limits: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(rateLimitCmd)
}
