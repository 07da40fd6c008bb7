package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/primate/internal/store"
)

var trialsCmd = &cobra.Command{
	Use:   "trials",
	Short: "Query trials recorded in the trial database",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		condition, _ := cmd.Flags().GetString("condition")
		limit, _ := cmd.Flags().GetInt("limit")
		counts, _ := cmd.Flags().GetBool("counts")

		exp, err := openExperiment(cmd, false)
		if err != nil {
			return err
		}
		defer exp.Close()

		st, err := exp.openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		repo := st.EventRepo()
		ctx := cmd.Context()

		if counts {
			rows, err := repo.TrialCounts(ctx)
			if err != nil {
				return fmt.Errorf("count trials: %w", err)
			}
			fmt.Printf("%-20s  %-28s  %s\n", "Subject", "Condition", "Trials")
			fmt.Println(strings.Repeat("─", 60))
			for _, r := range rows {
				fmt.Printf("%-20s  %-28s  %d\n", r.Subject, r.Condition, r.Trials)
			}
			return nil
		}

		events, err := repo.QueryTrials(ctx, store.QueryOpts{
			Subject:   subject,
			Condition: condition,
			Limit:     limit,
		})
		if err != nil {
			return fmt.Errorf("query trials: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No trials found.")
			return nil
		}

		fmt.Printf("%-6s  %-19s  %-12s  %-20s  %5s  %-10s  %7s  %4s  %4s  %s\n",
			"Seq", "Timestamp", "Subject", "Condition", "Trial", "Card", "Pellets", "BG", "Vid", "Latency")
		fmt.Println(strings.Repeat("─", 115))
		for _, e := range events {
			fmt.Printf("%-6d  %-19s  %-12s  %-20s  %5d  %-10s  %7d  %4d  %4d  %.2fs\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Subject,
				e.Condition,
				e.TrialIndex,
				e.Card,
				e.Pellets,
				e.BackgroundTouches,
				e.VideoTouches,
				e.Latency.Seconds(),
			)
		}
		return nil
	},
}

func init() {
	trialsCmd.Flags().String("subject", "", "Only trials for this subject")
	trialsCmd.Flags().String("condition", "", "Only trials for this condition ID")
	trialsCmd.Flags().Int("limit", 50, "Maximum number of trials to show (0 = all)")
	trialsCmd.Flags().Bool("counts", false, "Show trial counts per subject and condition instead")
}
