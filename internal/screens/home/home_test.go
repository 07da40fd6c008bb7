package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/primate/internal/catalog"
	"github.com/abhisek/primate/internal/progress"
	"github.com/abhisek/primate/internal/router"
	"github.com/abhisek/primate/internal/scheduler"
	"github.com/abhisek/primate/internal/screen"
	"github.com/abhisek/primate/internal/screens/addsubject"
)

type stubScreen struct{ subject string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "stub" }

func newTestHome(t *testing.T) *HomeScreen {
	t.Helper()
	cat := catalog.New([]string{"stranger"}, map[string]string{"stranger": "stranger.mp4"})
	sched, err := scheduler.New(cat, 2)
	if err != nil {
		t.Fatal(err)
	}
	roster, err := progress.NewRoster("Kofi", "Ama")
	if err != nil {
		t.Fatal(err)
	}
	kofi, _ := roster.Subject("Kofi")
	kofi.Ensure("stranger").NextTrialIndex = 2

	return New(Deps{
		Roster:       roster,
		Scheduler:    sched,
		ProgressPath: t.TempDir() + "/subjects.json",
		NewTrial: func(subject string) screen.Screen {
			return &stubScreen{subject: subject}
		},
	})
}

func TestDoneSubjectDisabled(t *testing.T) {
	h := newTestHome(t)
	if !h.disabled[0] {
		t.Error("Kofi has finished every condition and should be disabled")
	}
	if h.menu.SelectedLabel() != "Ama" {
		t.Errorf("selected = %q, want first enabled subject", h.menu.SelectedLabel())
	}
	if h.doneCount != 1 {
		t.Errorf("doneCount = %d, want 1", h.doneCount)
	}
}

func TestEnterStartsTrialScreen(t *testing.T) {
	h := newTestHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	stub, ok := msg.Screen.(*stubScreen)
	if !ok || stub.subject != "Ama" {
		t.Errorf("pushed %+v, want trial screen for Ama", msg.Screen)
	}
}

func TestSubjectAddedRebuildsMenu(t *testing.T) {
	h := newTestHome(t)
	if err := h.deps.Roster.Add("Zuri"); err != nil {
		t.Fatal(err)
	}
	h.Update(addsubject.SubjectAddedMsg{Name: "Zuri"})

	if h.menu.SelectedLabel() != "Zuri" {
		t.Errorf("selected = %q, want new subject", h.menu.SelectedLabel())
	}
	want := []string{"Kofi", "Ama", "Zuri", labelAddSubject, labelExit}
	if len(h.labels) != len(want) {
		t.Fatalf("labels = %v", h.labels)
	}
	for i := range want {
		if h.labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, h.labels[i], want[i])
		}
	}
}

func TestViewRenders(t *testing.T) {
	h := newTestHome(t)
	if h.View(100, 30) == "" {
		t.Error("empty view")
	}
	if h.View(80, 18) == "" {
		t.Error("empty compact view")
	}
}
