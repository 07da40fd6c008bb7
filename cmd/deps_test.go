package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/abhisek/primate/internal/progress"
)

// newExperimentCmd returns a command whose --config points at a lab
// directory holding one condition video and no progress file.
func newExperimentCmd(t *testing.T) (*cobra.Command, string) {
	t.Helper()
	dir := t.TempDir()
	videos := filepath.Join(dir, "videos")
	if err := os.MkdirAll(videos, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(videos, "stranger.mp4"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "data_dir: " + dir + "\nvideo_dir: videos\ntotal_trials: 2\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	if err := cmd.Flags().Set("config", cfgPath); err != nil {
		t.Fatal(err)
	}
	return cmd, filepath.Join(dir, "subjects.json")
}

func TestOpenExperimentMissingProgressIsFatal(t *testing.T) {
	cmd, progressPath := newExperimentCmd(t)

	exp, err := openExperiment(cmd, false)
	if err == nil {
		exp.Close()
		t.Fatal("expected error for missing progress file")
	}
	if !errors.Is(err, progress.ErrProgressFileMissing) {
		t.Errorf("err = %v, want ErrProgressFileMissing", err)
	}
	if _, statErr := os.Stat(progressPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("progress file should not be created, stat err = %v", statErr)
	}
}

func TestOpenExperimentCreateRosterStartsEmpty(t *testing.T) {
	cmd, _ := newExperimentCmd(t)

	exp, err := openExperiment(cmd, true)
	if err != nil {
		t.Fatalf("openExperiment: %v", err)
	}
	defer exp.Close()

	if n := len(exp.roster.Subjects()); n != 0 {
		t.Errorf("subjects = %d, want 0", n)
	}
	if exp.catalog.Len() != 1 {
		t.Errorf("catalog len = %d, want 1", exp.catalog.Len())
	}
}

func TestOpenExperimentReadsExistingProgress(t *testing.T) {
	cmd, progressPath := newExperimentCmd(t)
	roster, err := progress.NewRoster("Kofi")
	if err != nil {
		t.Fatal(err)
	}
	if err := progress.Save(progressPath, roster); err != nil {
		t.Fatal(err)
	}

	exp, err := openExperiment(cmd, false)
	if err != nil {
		t.Fatalf("openExperiment: %v", err)
	}
	defer exp.Close()

	subjects := exp.roster.Subjects()
	if len(subjects) != 1 || subjects[0].Name != "Kofi" {
		t.Errorf("subjects = %+v, want [Kofi]", subjects)
	}
}
