package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/primate/internal/catalog"
)

var statusCmd = &cobra.Command{
	Use:   "status [subject]",
	Short: "Show progress for every subject, or per condition for one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := openExperiment(cmd, false)
		if err != nil {
			return err
		}
		defer exp.Close()

		if len(args) == 1 {
			return printSubjectStatus(exp, args[0])
		}

		subjects := exp.roster.Subjects()
		if len(subjects) == 0 {
			fmt.Println("No subjects yet. Add one with: primate subject add <name>")
			return nil
		}

		total := exp.scheduler.TotalTrials()
		fmt.Printf("%-20s  %-10s  %9s  %-24s  %s\n", "Subject", "Status", "Completed", "Current", "Trials")
		fmt.Println(strings.Repeat("─", 80))

		for _, subj := range subjects {
			completed := 0
			current, trials := "-", "-"
			for _, id := range exp.scheduler.Conditions() {
				p, started := subj.Progress(id)
				if !started {
					continue
				}
				if exp.scheduler.Remaining(subj, id) == 0 {
					completed++
				}
				if p.LastPlayed {
					current = catalog.DisplayName(id)
					trials = fmt.Sprintf("%d/%d", p.NextTrialIndex, total)
				}
			}
			state := "running"
			if exp.scheduler.IsDone(subj) {
				state = "done"
			} else if completed == 0 && current == "-" {
				state = "new"
			}
			fmt.Printf("%-20s  %-10s  %4d/%-4d  %-24s  %s\n",
				subj.Name, state, completed, exp.catalog.Len(), current, trials)
		}
		return nil
	},
}

func printSubjectStatus(exp *experiment, name string) error {
	subj, err := exp.roster.Subject(name)
	if err != nil {
		return err
	}

	fmt.Printf("%-28s  %10s  %9s  %s\n", "Condition", "Next trial", "Remaining", "Last played")
	fmt.Println(strings.Repeat("─", 66))
	for _, id := range exp.scheduler.Conditions() {
		p, started := subj.Progress(id)
		next := "-"
		if started {
			next = fmt.Sprintf("%d", p.NextTrialIndex)
		}
		last := ""
		if p.LastPlayed {
			last = "✓"
		}
		fmt.Printf("%-28s  %10s  %9d  %s\n",
			catalog.DisplayName(id), next, exp.scheduler.Remaining(subj, id), last)
	}

	if exp.scheduler.IsDone(subj) {
		fmt.Printf("\n%s has completed every condition.\n", subj.Name)
	}
	return nil
}
