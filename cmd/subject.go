package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/primate/internal/progress"
)

var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Manage the subject roster",
}

var subjectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a subject with no progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := openExperiment(cmd, true)
		if err != nil {
			return err
		}
		defer exp.Close()

		name := strings.TrimSpace(args[0])
		if err := exp.roster.Add(name); err != nil {
			return err
		}
		if err := progress.Save(exp.cfg.ProgressFile, exp.roster); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		exp.logger.Info("subject added", "subject", name)
		fmt.Printf("Added %s\n", name)
		return nil
	},
}

var subjectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects in roster order",
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := openExperiment(cmd, false)
		if err != nil {
			return err
		}
		defer exp.Close()

		for _, subj := range exp.roster.Subjects() {
			mark := ""
			if exp.scheduler.IsDone(subj) {
				mark = "  (done)"
			}
			fmt.Printf("%s%s\n", subj.Name, mark)
		}
		return nil
	},
}

func init() {
	subjectCmd.AddCommand(subjectAddCmd)
	subjectCmd.AddCommand(subjectListCmd)
}
