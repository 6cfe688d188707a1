// Command sync runs one-shot pipeline syncs for the tracked club.
//
// Usage:
//
//	ballclub-sync roster
//	ballclub-sync schedule --season 2025
//	ballclub-sync results --season 2025 --from 2025-06-01 --to 2025-06-30
//	ballclub-sync gamelog --player 30193
//	ballclub-sync gamelog --all
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/app"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/config"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/pipeline"
)

func main() {
	root := &cobra.Command{
		Use:           "ballclub-sync",
		Short:         "Roster, schedule, results, and game-log sync for the tracked club",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(rosterCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(resultsCmd())
	root.AddCommand(gamelogCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Sync the current roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func(ctx context.Context, a *app.App) (*pipeline.Report, error) {
				return a.Orchestrator.SyncRoster(ctx)
			})
		},
	}
}

func scheduleCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Sync the season schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func(ctx context.Context, a *app.App) (*pipeline.Report, error) {
				return a.Orchestrator.SyncSchedule(ctx, seasonOr(season, a))
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year (default: configured season)")
	return cmd
}

func resultsCmd() *cobra.Command {
	var (
		season      int
		from, to    string
		corrections bool
	)
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Sync final game results with weather enrichment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dr, err := parseRange(from, to)
			if err != nil {
				return err
			}
			var opts []pipeline.Option
			if corrections {
				opts = append(opts, pipeline.WithScoreCorrections())
			}
			return runWith(opts, func(ctx context.Context, a *app.App) (*pipeline.Report, error) {
				return a.Orchestrator.SyncResultsAndWeather(ctx, seasonOr(season, a), dr)
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year (default: configured season)")
	cmd.Flags().StringVar(&from, "from", "", "Start date, YYYY-MM-DD inclusive")
	cmd.Flags().StringVar(&to, "to", "", "End date, YYYY-MM-DD inclusive")
	cmd.Flags().BoolVar(&corrections, "allow-corrections", false, "Permit overwriting final scores")
	return cmd
}

func gamelogCmd() *cobra.Command {
	var (
		player string
		season int
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "gamelog",
		Short: "Sync player game logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if player == "" && !all {
				return fmt.Errorf("either --player or --all is required")
			}
			return run(func(ctx context.Context, a *app.App) (*pipeline.Report, error) {
				if player != "" {
					return a.Orchestrator.SyncPlayerGameLog(ctx, player, seasonOr(season, a))
				}
				return syncAllGameLogs(ctx, a, seasonOr(season, a))
			})
		},
	}
	cmd.Flags().StringVar(&player, "player", "", "Player external id")
	cmd.Flags().IntVar(&season, "season", 0, "Season year (default: configured season)")
	cmd.Flags().BoolVar(&all, "all", false, "Sync every player on the stored roster")
	return cmd
}

// syncAllGameLogs fans out over the stored roster, merging per-player reports.
func syncAllGameLogs(ctx context.Context, a *app.App, season int) (*pipeline.Report, error) {
	players, err := a.Store.RosterEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("no roster entries stored, run a roster sync first")
	}

	merged := &pipeline.Report{Kind: pipeline.KindGameLog, StartedAt: time.Now().UTC()}
	for _, p := range players {
		r, err := a.Orchestrator.SyncPlayerGameLog(ctx, p.ExternalID, season)
		if err != nil {
			a.Logger.Error("game log sync failed", "player", p.Name, "error", err)
			continue
		}
		merged.Fetched += r.Fetched
		merged.Accepted += r.Accepted
		merged.Warned += r.Warned
		merged.Rejected += r.Rejected
		merged.Skipped += r.Skipped
		merged.Warnings = append(merged.Warnings, r.Warnings...)
		merged.Rejections = append(merged.Rejections, r.Rejections...)
		merged.Partial = merged.Partial || r.Partial
	}
	merged.FinishedAt = time.Now().UTC()
	return merged, nil
}

func seasonOr(flag int, a *app.App) int {
	if flag != 0 {
		return flag
	}
	return a.Config.Season
}

func parseRange(from, to string) (pipeline.DateRange, error) {
	var dr pipeline.DateRange
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return dr, fmt.Errorf("parse --from: %w", err)
		}
		dr.From = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return dr, fmt.Errorf("parse --to: %w", err)
		}
		// Inclusive end of day.
		dr.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return dr, nil
}

func run(fn func(ctx context.Context, a *app.App) (*pipeline.Report, error)) error {
	return runWith(nil, fn)
}

// runWith handles config loading, wiring, signal cancellation, and report
// output shared by every subcommand.
func runWith(opts []pipeline.Option, fn func(ctx context.Context, a *app.App) (*pipeline.Report, error)) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	report, runErr := fn(ctx, a)
	if report != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(report) //nolint:errcheck // stdout report is best-effort
	}
	return runErr
}
