package cmd

import (
	"fmt"

	"dupfinder/database"
	"dupfinder/logging"

	"github.com/spf13/cobra"
)

func (a *app) newHistoryCmd() *cobra.Command {
	var (
		limit int
		runID string
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded detection runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.setup()
			if err != nil {
				return err
			}
			defer logging.CloseLogger()

			db, err := database.InitDatabase(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("error opening database: %w", err)
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				run, err := database.GetRun(db, runID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Run %s (%s) source=%s processed=%d duplicates=%d\n",
					run.ID, run.CreatedAt, run.Source, run.TotalProcessed, run.TotalDuplicates)
				for _, g := range run.DuplicateGroups {
					fmt.Fprintf(out, "  %s: %v\n", g.Original, g.Duplicates)
				}
				return nil
			}

			runs, err := database.ListRuns(db, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %s  source=%s processed=%d unique=%d duplicates=%d\n",
					run.ID, run.CreatedAt, run.Source, run.TotalProcessed, run.UniqueCount, run.TotalDuplicates)
			}
			return nil
		},
	}

	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to list")
	historyCmd.Flags().StringVar(&runID, "run", "", "show the duplicate groups of one run")
	return historyCmd
}
