// Command chessvault is the one-shot CLI for downloading and analyzing
// a player's chess.com game history.
//
// Usage:
//
//	chessvault download magnuscarlsen --months 2023/05,2024/03
//	chessvault download magnuscarlsen --all
//	chessvault heatmap magnuscarlsen --all
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/marioc/chessvault/internal/chesscom"
	"github.com/marioc/chessvault/internal/config"
	"github.com/marioc/chessvault/internal/db"
	"github.com/marioc/chessvault/internal/export"
	"github.com/marioc/chessvault/internal/logger"
	"github.com/marioc/chessvault/internal/repository/sqlite"
	"github.com/marioc/chessvault/internal/services"
)

var (
	monthsFlag string
	allFlag    bool
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "chessvault",
		Short: "Download and analyze chess.com game archives",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose debug output")
	root.PersistentFlags().StringVar(&monthsFlag, "months", "", "Comma-separated months to sync (e.g. 2023/05,2024/03)")
	root.PersistentFlags().BoolVar(&allFlag, "all", false, "Sync every available month")

	root.AddCommand(downloadCmd())
	root.AddCommand(heatmapCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the wired services for one CLI invocation.
type app struct {
	client   *chesscom.Client
	download services.DownloadService
	close    func()
}

func bootstrap() (*app, error) {
	cfg := config.Load()

	level := logger.WARN // keep CLI output clean
	if verbose {
		level = logger.DEBUG
	}
	logger.SetDefault(logger.New(logger.WithLevel(level), logger.WithOutput(os.Stderr)))

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	client := chesscom.New(time.Duration(cfg.FetchTimeoutSecs)*time.Second, cfg.RateLimitRPS)
	archiveRepo := sqlite.NewArchiveRepository(database.DB)
	syncService := services.NewSyncService(archiveRepo, client, cfg.MaxConcurrentArchive)
	downloadService := services.NewDownloadService(syncService, export.New(cfg.DownloadsDir))

	return &app{
		client:   client,
		download: downloadService,
		close:    func() { database.Close() },
	}, nil
}

// resolveMonths turns the --months/--all flags into archive locators.
func (a *app) resolveMonths(cmd *cobra.Command, username string) ([]string, error) {
	if allFlag {
		archives, err := a.client.FetchArchives(cmd.Context(), username)
		if err != nil {
			return nil, fmt.Errorf("list archives: %w", err)
		}
		if len(archives) == 0 {
			return nil, fmt.Errorf("no archives found for %s", username)
		}
		return archives, nil
	}

	if monthsFlag == "" {
		return nil, fmt.Errorf("either --months or --all is required")
	}

	var locators []string
	for _, m := range strings.Split(monthsFlag, ",") {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		locators = append(locators, fmt.Sprintf("https://api.chess.com/pub/player/%s/games/%s", strings.ToLower(username), m))
	}
	if len(locators) == 0 {
		return nil, fmt.Errorf("no valid months in %q", monthsFlag)
	}
	return locators, nil
}

func downloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download [username]",
		Short: "Download games, print a summary, and export CSV/JSON artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			username := args[0]
			locators, err := a.resolveMonths(cmd, username)
			if err != nil {
				return err
			}

			result, err := a.download.DownloadGames(cmd.Context(), username, locators)
			if err != nil {
				return err
			}

			s := result.Summary
			if s.TotalGames == 0 {
				fmt.Println("no games found for the selected period")
				return nil
			}

			fmt.Printf("games:    %d (%d months from cache, %d from api)\n",
				s.TotalGames, result.MonthsFromCache, result.MonthsFromAPI)
			fmt.Printf("record:   %d wins / %d losses / %d draws\n", s.Wins, s.Losses, s.Draws)
			fmt.Printf("colors:   %d as white, %d as black\n", s.AsWhite, s.AsBlack)
			if s.Period != nil {
				fmt.Printf("period:   %s to %s (%d months)\n", s.Period.Start, s.Period.End, s.Period.Months)
			}
			fmt.Printf("exports:  %s\n          %s\n", s.CSVPath, s.JSONPath)
			return nil
		},
	}
}

func heatmapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heatmap [username]",
		Short: "Print the weekday/hour activity heatmap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			username := args[0]
			locators, err := a.resolveMonths(cmd, username)
			if err != nil {
				return err
			}

			heatmap, err := a.download.HeatmapData(cmd.Context(), username, locators)
			if err != nil {
				return err
			}

			fmt.Printf("%-10s", "")
			for h := 0; h < 24; h += 2 {
				fmt.Printf("%4d", h)
			}
			fmt.Println()
			for d, day := range heatmap.Days {
				fmt.Printf("%-10s", day)
				for h := 0; h < 24; h += 2 {
					fmt.Printf("%4d", heatmap.Totals[d][h]+heatmap.Totals[d][h+1])
				}
				fmt.Println()
			}
			return nil
		},
	}
}
