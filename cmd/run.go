package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/primate/internal/app"
	"github.com/abhisek/primate/internal/dispenser"
	"github.com/abhisek/primate/internal/session"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the experiment (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp loads the experiment, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	exp, err := openExperiment(cmd, false)
	if err != nil {
		return err
	}
	defer exp.Close()
	cfg := exp.cfg

	deps := session.Deps{
		Scheduler:       exp.scheduler,
		Roster:          exp.roster,
		ProgressPath:    cfg.ProgressFile,
		TrialLogDir:     cfg.TrialLogDir,
		SafePayoff:      cfg.Payoff.Safe,
		RiskyPayoff:     cfg.Payoff.Risky,
		InterPelletWait: cfg.Dispenser.InterPelletWait,
		Logger:          exp.logger,
	}

	// The CSV log is authoritative; the experiment runs without the mirror.
	st, err := exp.openStore()
	if err != nil {
		exp.logger.Warn("trial mirror unavailable", "path", cfg.Database, "error", err)
		fmt.Fprintln(os.Stderr, "Trial database unavailable:", err)
		fmt.Fprintln(os.Stderr, "Trials are still written to the CSV log.")
	} else {
		defer st.Close()
		deps.Events = st.EventRepo()
	}

	if cfg.Dispenser.Command != "" {
		deps.Dispenser = dispenser.NewCommand(cfg.Dispenser.Command, cfg.Dispenser.Args...)
	} else {
		exp.logger.Info("no dispenser command configured, pellets are not dispensed")
	}

	return app.Run(app.Options{
		Session:         deps,
		ImageDir:        cfg.ImageDir,
		FeedbackWindow:  cfg.Timing.FeedbackWindow,
		InterTrialBlank: cfg.Timing.InterTrialBlank,
	})
}
