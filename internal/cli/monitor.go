package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/reviewbot/internal/adapter/driven/dryrun"
	githubadapter "github.com/ericfisherdev/reviewbot/internal/adapter/driven/github"
	sqliteadapter "github.com/ericfisherdev/reviewbot/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/reviewbot/internal/analyzer"
	"github.com/ericfisherdev/reviewbot/internal/application"
	"github.com/ericfisherdev/reviewbot/internal/config"
	"github.com/ericfisherdev/reviewbot/internal/domain/port/driven"
	"github.com/ericfisherdev/reviewbot/internal/review"
)

var (
	flagMonitorRepos  []string
	flagInterval      time.Duration
	flagOnce          bool
	flagMonitorRules  string
	flagMonitorDryRun bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch repositories and review new pull request commits",
	Long: `Monitor polls the configured repositories for open pull requests and
reviews every PR whose head commit has not been reviewed yet. Review state
survives restarts; --once performs a single cycle (for cron) and exits
non-zero when a reviewed PR carries error-severity findings.`,
	Run: func(cmd *cobra.Command, args []string) {
		runMonitor(cmd.Context())
	},
}

func init() {
	monitorCmd.Flags().StringArrayVarP(&flagMonitorRepos, "repo", "r", nil, "Repository to monitor, owner/name (repeatable)")
	monitorCmd.Flags().DurationVarP(&flagInterval, "interval", "i", 0, "Poll interval (default from REVIEWBOT_POLL_INTERVAL or 5m)")
	monitorCmd.Flags().BoolVar(&flagOnce, "once", false, "Run one cycle and exit")
	monitorCmd.Flags().StringVar(&flagMonitorRules, "rules", "", "Rules YAML file path")
	monitorCmd.Flags().BoolVar(&flagMonitorDryRun, "dry-run", false, "Log publish calls instead of posting")
	_ = monitorCmd.MarkFlagRequired("repo")
}

func runMonitor(ctx context.Context) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	if cfg.GitHubToken == "" {
		fmt.Fprintln(os.Stderr, "Error: REVIEWBOT_GITHUB_TOKEN is not set")
		exitCode = ExitRuntimeError
		return
	}

	interval := cfg.PollInterval
	if flagInterval > 0 {
		interval = flagInterval
	}

	rules, err := analyzer.LoadRules(flagMonitorRules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A corrupt or missing store is a cold start, handled inside Open.
	db, err := sqliteadapter.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing state store", "error", closeErr)
		}
	}()

	store := sqliteadapter.NewStateRepo(db)
	host := githubadapter.NewClient(cfg.GitHubToken)

	var publisher driven.ReviewPublisher = host
	if flagMonitorDryRun {
		publisher = dryrun.NewPublisher()
	}

	orchestrator := review.NewOrchestrator(analyzer.FromRules(rules), cfg.Workers)
	reviewer := application.NewReviewService(host, publisher, orchestrator, cfg.Extensions)
	monitor := application.NewMonitorService(host, store, reviewer, flagMonitorRepos, interval, cfg.Workers)

	slog.Info("monitor starting",
		"repos", flagMonitorRepos,
		"interval", interval,
		"state_db", cfg.DBPath,
		"once", flagOnce,
		"dry_run", flagMonitorDryRun,
	)

	if flagOnce {
		stats := monitor.RunCycle(ctx)
		fmt.Fprintf(os.Stdout, "Reviewed %d PR(s), skipped %d, failures %d\n",
			stats.Reviewed, stats.Skipped, stats.Failures)
		switch {
		case stats.ErrorFindings > 0:
			exitCode = ExitFindings
		case stats.Failures > 0:
			exitCode = ExitRuntimeError
		}
		return
	}

	monitor.Start(ctx)
}
