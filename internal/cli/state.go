package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/ericfisherdev/reviewbot/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/reviewbot/internal/config"
)

var flagStateRepo string

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or clear the review state store",
}

var stateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded pull request reviews",
	Run: func(cmd *cobra.Command, args []string) {
		runStateList(cmd.Context())
	},
}

var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear review state so pull requests are re-reviewed",
	Run: func(cmd *cobra.Command, args []string) {
		runStateClear(cmd.Context())
	},
}

func init() {
	stateClearCmd.Flags().StringVar(&flagStateRepo, "repo", "", "Clear only this repository's records (owner/name)")
	stateCmd.AddCommand(stateListCmd)
	stateCmd.AddCommand(stateClearCmd)
}

func openStateStore() (*sqliteadapter.DB, *sqliteadapter.StateRepo, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := sqliteadapter.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return db, sqliteadapter.NewStateRepo(db), nil
}

func runStateList(ctx context.Context) {
	db, store, err := openStateStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	defer db.Close()

	records, err := store.ListAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "No reviews recorded")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REPOSITORY\tPR\tHEAD\tREVIEWED AT")
	for _, rec := range records {
		head := rec.HeadSHA
		if len(head) > 8 {
			head = head[:8]
		}
		fmt.Fprintf(w, "%s\t#%d\t%s\t%s\n",
			rec.RepoFullName, rec.Number, head, rec.ReviewedAt.Format("2006-01-02 15:04:05"))
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
	}
}

func runStateClear(ctx context.Context) {
	db, store, err := openStateStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	defer db.Close()

	if err := store.Clear(ctx, flagStateRepo); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if flagStateRepo == "" {
		fmt.Fprintln(os.Stdout, "Cleared all review state")
	} else {
		fmt.Fprintf(os.Stdout, "Cleared review state for %s\n", flagStateRepo)
	}
}
