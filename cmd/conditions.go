package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/primate/internal/catalog"
)

var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "List conditions in scheduling order",
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := openExperiment(cmd, false)
		if err != nil {
			return err
		}
		defer exp.Close()

		fmt.Printf("%3s  %-24s  %-28s  %s\n", "#", "ID", "Name", "Video")
		fmt.Println(strings.Repeat("─", 80))
		for i, id := range exp.catalog.List() {
			fmt.Printf("%3d  %-24s  %-28s  %s\n",
				i+1, id, catalog.DisplayName(id), filepath.Base(exp.catalog.AssetPath(id)))
		}

		fmt.Printf("\n%d conditions, %d trials each\n", exp.catalog.Len(), exp.scheduler.TotalTrials())
		return nil
	},
}
