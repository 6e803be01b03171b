package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/reviewbot/internal/adapter/driven/dryrun"
	githubadapter "github.com/ericfisherdev/reviewbot/internal/adapter/driven/github"
	"github.com/ericfisherdev/reviewbot/internal/analyzer"
	"github.com/ericfisherdev/reviewbot/internal/application"
	"github.com/ericfisherdev/reviewbot/internal/config"
	"github.com/ericfisherdev/reviewbot/internal/domain/model"
	"github.com/ericfisherdev/reviewbot/internal/domain/port/driven"
	"github.com/ericfisherdev/reviewbot/internal/output"
	"github.com/ericfisherdev/reviewbot/internal/review"
)

var (
	flagRules    string
	flagFormat   string
	flagOut      string
	flagRepo     string
	flagPR       int
	flagNoInline bool
	flagDryRun   bool
)

var reviewCmd = &cobra.Command{
	Use:   "review [path]",
	Short: "Review local files or a single hosted pull request",
	Long: `Review a file or directory, or a hosted pull request (--repo with --pr).
PR mode fetches the PR's changed target-language files at head and publishes
a summary comment, inline comments, and a review verdict.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runReview(cmd.Context(), args)
	},
}

func init() {
	reviewCmd.Flags().StringVar(&flagRules, "rules", "", "Rules YAML file path")
	reviewCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json)")
	reviewCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	reviewCmd.Flags().StringVar(&flagRepo, "repo", "", "Hosting repository (owner/name)")
	reviewCmd.Flags().IntVar(&flagPR, "pr", 0, "Pull request number to review")
	reviewCmd.Flags().BoolVar(&flagNoInline, "no-inline", false, "Post only the summary comment, no inline comments")
	reviewCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Log publish calls instead of posting")
}

func runReview(ctx context.Context, args []string) {
	if (flagRepo == "") != (flagPR == 0) {
		fmt.Fprintln(os.Stderr, "Error: --repo and --pr must be given together")
		exitCode = ExitUsageError
		return
	}
	if flagRepo == "" && len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: provide a path, or --repo with --pr")
		exitCode = ExitUsageError
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	// Malformed rules are fatal at startup, never downgraded.
	rules, err := analyzer.LoadRules(flagRules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	orchestrator := review.NewOrchestrator(analyzer.FromRules(rules), cfg.Workers)

	if flagRepo != "" {
		reviewPullRequest(ctx, cfg, orchestrator)
		return
	}

	reviewLocalPath(ctx, cfg, orchestrator, args[0])
}

func reviewPullRequest(ctx context.Context, cfg *config.Config, orchestrator *review.Orchestrator) {
	if cfg.GitHubToken == "" {
		fmt.Fprintln(os.Stderr, "Error: REVIEWBOT_GITHUB_TOKEN is not set")
		exitCode = ExitRuntimeError
		return
	}

	host := githubadapter.NewClient(cfg.GitHubToken)

	var publisher driven.ReviewPublisher = host
	if flagDryRun {
		publisher = dryrun.NewPublisher()
	}

	svc := application.NewReviewService(host, publisher, orchestrator, cfg.Extensions)

	pr, err := host.FetchPullRequest(ctx, flagRepo, flagPR)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	files, err := host.FetchChangedFiles(ctx, flagRepo, flagPR)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	target := svc.TargetFiles(files)
	if len(target) == 0 {
		fmt.Fprintf(os.Stdout, "No %s files changed in %s#%d\n", strings.Join(cfg.Extensions, "/"), flagRepo, flagPR)
		return
	}

	rev, err := svc.ReviewChangedFiles(ctx, flagRepo, *pr, target, !flagNoInline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if err := output.WriteReport(output.NewReport(len(target), rev.Result), flagFormat, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	fmt.Fprintf(os.Stderr, "Review posted: %d inline, %d summary-only, verdict %s\n",
		rev.InlinePosted, rev.SummaryOnly, rev.Result.Verdict)

	if rev.Result.Counts.Errors > 0 {
		exitCode = ExitFindings
	}
}

func reviewLocalPath(ctx context.Context, cfg *config.Config, orchestrator *review.Orchestrator, path string) {
	sources, err := collectSources(path, cfg.Extensions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	if len(sources) == 0 {
		fmt.Fprintf(os.Stdout, "No %s files found in %s\n", strings.Join(cfg.Extensions, "/"), path)
		return
	}

	result, err := orchestrator.Run(ctx, sources)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if err := output.WriteReport(output.NewReport(len(sources), result), flagFormat, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if result.Counts.Errors > 0 {
		exitCode = ExitFindings
	}
}

// collectSources gathers target-language files under path, skipping hidden
// directories and vendor trees.
func collectSources(path string, extensions []string) ([]model.SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	matches := func(p string) bool {
		for _, ext := range extensions {
			if strings.HasSuffix(p, ext) {
				return true
			}
		}
		return false
	}

	var paths []string
	if info.IsDir() {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if p != path && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
					return filepath.SkipDir
				}
				return nil
			}
			if matches(p) {
				paths = append(paths, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	} else if matches(path) {
		paths = append(paths, path)
	}

	sources := make([]model.SourceFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		sources = append(sources, model.SourceFile{Path: p, Content: string(data)})
	}

	return sources, nil
}
