package addsubject

import (
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/primate/internal/progress"
)

func typeName(a *AddSubjectScreen, name string) {
	for _, r := range name {
		a.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestAddSubject_SavesAndPops(t *testing.T) {
	roster, _ := progress.NewRoster("Kofi")
	path := filepath.Join(t.TempDir(), "subjects.json")
	a := New(roster, path)

	typeName(a, "Ama")
	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command after submit")
	}

	if _, err := roster.Subject("Ama"); err != nil {
		t.Errorf("subject not added: %v", err)
	}
	loaded, err := progress.Load(path)
	if err != nil {
		t.Fatalf("load saved roster: %v", err)
	}
	if got := loaded.Names(); len(got) != 2 || got[1] != "Ama" {
		t.Errorf("saved names = %v", got)
	}
}

func TestAddSubject_Duplicate(t *testing.T) {
	roster, _ := progress.NewRoster("Kofi")
	a := New(roster, filepath.Join(t.TempDir(), "subjects.json"))

	typeName(a, "Kofi")
	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("duplicate name should not leave the form")
	}
	if a.input.Err() != "subject already exists" {
		t.Errorf("error = %q", a.input.Err())
	}
}

func TestAddSubject_Empty(t *testing.T) {
	roster, _ := progress.NewRoster()
	a := New(roster, filepath.Join(t.TempDir(), "subjects.json"))

	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty name should not leave the form")
	}
	if a.input.Err() == "" {
		t.Error("expected an error for an empty name")
	}
	if len(roster.Names()) != 0 {
		t.Error("roster should be unchanged")
	}
}

func TestAddSubject_Title(t *testing.T) {
	a := New(&progress.Roster{}, "unused")
	if a.Title() != "Add Subject" {
		t.Errorf("Title = %q", a.Title())
	}
}
