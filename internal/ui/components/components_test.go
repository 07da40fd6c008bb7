package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMenuSkipsDisabled(t *testing.T) {
	var chosen string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			chosen = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Kofi", Disabled: true},
		{Label: "Ama", Action: pick("Ama")},
		{Label: "Yaw", Disabled: true},
		{Label: "Esi", Action: pick("Esi")},
	})

	if m.SelectedLabel() != "Ama" {
		t.Fatalf("initial selection = %q, want Ama", m.SelectedLabel())
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.SelectedLabel() != "Esi" {
		t.Errorf("after down = %q, want Esi", m.SelectedLabel())
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.SelectedLabel() != "Ama" {
		t.Errorf("after up = %q, want Ama", m.SelectedLabel())
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.SelectedLabel() != "Ama" {
		t.Errorf("up past first enabled = %q, want Ama", m.SelectedLabel())
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if chosen != "Ama" {
		t.Errorf("enter chose %q, want Ama", chosen)
	}
}

func TestMenuViewListsAll(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Kofi", Disabled: true}, {Label: "EXIT"}})
	view := m.View()
	for _, label := range []string{"Kofi", "EXIT"} {
		if !strings.Contains(view, label) {
			t.Errorf("view missing %q", label)
		}
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 200, 0},
		{50, 200, 0.25},
		{200, 200, 1},
		{250, 200, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := Fraction(tt.done, tt.total); got != tt.want {
			t.Errorf("Fraction(%d, %d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestTextInputError(t *testing.T) {
	ti := NewTextInput("name", 20)
	ti.SetError("already exists")
	if !strings.Contains(ti.View(), "already exists") {
		t.Error("error not rendered")
	}
	ti, _ = ti.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if ti.Err() != "" {
		t.Errorf("error not cleared on edit: %q", ti.Err())
	}
}
