package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/primate/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "primate",
	Short: "Run the risky-choice experiment",
	Long:  "PriMate: presents social video conditions to each subject in turn and records card choices, resuming where every subject left off.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides PRIMATE_CONFIG env var)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(conditionsCmd)
	rootCmd.AddCommand(subjectCmd)
	rootCmd.AddCommand(trialsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config named by --config (which must exist), then
// PRIMATE_CONFIG or the default XDG path (which may be absent).
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return config.Load(p, true)
	}
	p, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	return config.Load(p, false)
}
