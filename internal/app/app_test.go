package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/primate/internal/catalog"
	"github.com/abhisek/primate/internal/progress"
	"github.com/abhisek/primate/internal/scheduler"
	"github.com/abhisek/primate/internal/session"
)

func newTestModel(t *testing.T) (AppModel, string) {
	t.Helper()
	dir := t.TempDir()

	safe := filepath.Join(dir, "safe.csv")
	risky := filepath.Join(dir, "risky.csv")
	for _, p := range []string{safe, risky} {
		if err := os.WriteFile(p, []byte("1\n2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cat := catalog.New([]string{"stranger"}, map[string]string{"stranger": "/videos/stranger.mp4"})
	sched, err := scheduler.New(cat, 2)
	if err != nil {
		t.Fatal(err)
	}
	roster, err := progress.NewRoster("Kofi")
	if err != nil {
		t.Fatal(err)
	}
	progressPath := filepath.Join(dir, "subjects.json")

	m, err := newAppModel(Options{
		Session: session.Deps{
			Scheduler:    sched,
			Roster:       roster,
			ProgressPath: progressPath,
			TrialLogDir:  filepath.Join(dir, "stats"),
			SafePayoff:   safe,
			RiskyPayoff:  risky,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m, progressPath
}

// update feeds msg to the model and runs the returned commands until none
// produce a message the router handles.
func update(m AppModel, msg tea.Msg) AppModel {
	for msg != nil {
		next, cmd := m.Update(msg)
		m = next.(AppModel)
		if cmd == nil {
			return m
		}
		msg = cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
	}
	return m
}

func TestNewAppModelValidatesDeps(t *testing.T) {
	if _, err := newAppModel(Options{}); err == nil {
		t.Fatal("expected error for missing session deps")
	}
}

func TestHomeView(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	content := m.render()
	if !strings.Contains(content, "Subjects") {
		t.Error("header should show the home title")
	}
	if !strings.Contains(content, "Kofi") {
		t.Error("home should list the subject")
	}
}

func TestEscOnHomeIsNoop(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestStartSessionAndShutdown(t *testing.T) {
	m, progressPath := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want trial screen pushed", m.router.Depth())
	}
	if len(m.sessions.list) != 1 {
		t.Fatalf("tracked sessions = %d, want 1", len(m.sessions.list))
	}
	if !strings.Contains(m.render(), "Stranger") {
		t.Error("header should show the running condition")
	}

	// Esc is handled by the trial screen, not popped.
	m = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 2 {
		t.Errorf("Esc popped a running session")
	}

	if err := m.shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	roster, err := progress.Load(progressPath)
	if err != nil {
		t.Fatalf("load saved progress: %v", err)
	}
	subj, err := roster.Subject("Kofi")
	if err != nil {
		t.Fatal(err)
	}
	entry, ok := subj.Progress("stranger")
	if !ok {
		t.Fatal("expected an entry for the assigned condition")
	}
	if !entry.LastPlayed || entry.NextTrialIndex != 0 {
		t.Errorf("entry = %+v", entry)
	}
}

func TestShutdownWithoutSessionsSavesRoster(t *testing.T) {
	m, progressPath := newTestModel(t)
	if err := m.shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if _, err := os.Stat(progressPath); err != nil {
		t.Errorf("progress file not written: %v", err)
	}
}
