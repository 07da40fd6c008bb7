package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/primate/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		SessionID:        "abc",
		Subject:          "Kofi",
		Condition:        "high_ranking",
		ResumeTrialIndex: 17,
		TrialsRun:        183,
		SafeChoices:      120,
		RiskyChoices:     63,
		Pellets:          260,
		Duration:         95 * time.Minute,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), "High Ranking")
	if s.Title() != "Condition Complete" {
		t.Errorf("Title = %q, want %q", s.Title(), "Condition Complete")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), "High Ranking")
	view := s.View(100, 30)
	for _, want := range []string{"'Kofi' completed condition 'High Ranking'", "Press any key to exit", "Trials: 183"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_AnyKeyQuits(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
		{Code: 'x', Text: "x"},
	} {
		s := New(testSummary(), "High Ranking")
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("expected quit command for %v", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg for %v", key)
		}
	}
}

func TestSummaryScreen_IgnoresNonKeys(t *testing.T) {
	s := New(testSummary(), "High Ranking")
	if _, cmd := s.Update(tea.WindowSizeMsg{Width: 80, Height: 24}); cmd != nil {
		t.Error("non-key message should not quit")
	}
}

func TestSummaryScreen_Status(t *testing.T) {
	s := New(testSummary(), "High Ranking")
	subject, condition := s.Status()
	if subject != "Kofi" || condition != "High Ranking" {
		t.Errorf("Status = %q, %q", subject, condition)
	}
	if !s.BlocksBack() {
		t.Error("summary screen should block Esc")
	}
}
