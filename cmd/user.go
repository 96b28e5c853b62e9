package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/chart"
	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

var userCmd = &cobra.Command{
	Use:   "user LOGIN...",
	Short: "Shows profile statistics and rankings for GitHub users",
	Long: `Looks up one or more GitHub users and shows their profile counters, their
most forked and most starred repositories and their most used languages.
Several users are looked up concurrently.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		var logins []string
		for _, arg := range args {
			login, err := usecase.ValidateLogin(arg)
			if err != nil {
				pterm.Warning.Println(err.Error())
				continue
			}
			logins = append(logins, login)
		}
		if len(logins) == 0 {
			return
		}

		output, _ := cmd.Flags().GetString("output")
		if output != "table" && output != "json" {
			fmt.Fprintf(os.Stderr, "Invalid --output %q. Please use table or json.\n", output)
			os.Exit(1)
		}

		_, _, dashboard, err := setup(cmd, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		views, err := dashboard.LookupMany(ctx, logins)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to look up users: %v\n", err)
			os.Exit(1)
		}

		if output == "json" {
			jsonData, err := json.MarshalIndent(views, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(jsonData))
		} else {
			for _, view := range views {
				if err := printView(view); err != nil {
					fmt.Fprintf(os.Stderr, "Failed to print %s: %v\n", view.Login, err)
					os.Exit(1)
				}
			}
		}

		for _, view := range views {
			if view.State == usecase.StateFailed {
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.Flags().StringP("output", "o", "table", "Output format: table or json")
}

// printView renders one lookup in the terminal.
func printView(view usecase.View) error {
	switch view.State {
	case usecase.StateNotFound:
		pterm.Warning.Printf("%s: %s\n", view.Login, view.Message)
		return nil
	case usecase.StateFailed:
		pterm.Error.Printf("%s: %s\n", view.Login, view.Message)
		return nil
	case usecase.StateSucceeded:
	default:
		return nil
	}

	user := view.User
	pterm.DefaultSection.Println(user.DisplayName())
	if user.Bio != "" {
		pterm.Println(user.Bio)
	}
	pterm.Println(user.URL)

	counters := pterm.TableData{
		{"Total Repositories", "Followers", "Following", "Gists", "Total Stars", "Median Stars"},
		{
			strconv.Itoa(user.TotalRepositories),
			strconv.Itoa(user.Followers),
			strconv.Itoa(user.Following),
			strconv.Itoa(user.Gists),
			strconv.Itoa(view.Summary.TotalStars),
			strconv.FormatFloat(view.Summary.MedianStars, 'f', 1, 64),
		},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(counters).Render(); err != nil {
		return err
	}

	if err := printRanking("Popular Repos", view.Stars); err != nil {
		return err
	}
	if err := printRanking("Forked Repos", view.Forks); err != nil {
		return err
	}
	return printRanking("Used Languages", view.Languages)
}

func printRanking[P chart.Point](title string, ranked []P) error {
	pterm.DefaultSection.WithLevel(2).Println(title)
	if len(ranked) == 0 {
		pterm.Info.Println("nothing to show")
		return nil
	}
	bars := make(pterm.Bars, 0, len(ranked))
	for _, r := range ranked {
		label, value := r.Point()
		bars = append(bars, pterm.Bar{Label: label, Value: value})
	}
	return pterm.DefaultBarChart.WithBars(bars).WithHorizontal().WithShowValue().Render()
}
