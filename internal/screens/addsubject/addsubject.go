// Package addsubject is the form for adding a subject to the roster.
package addsubject

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/primate/internal/progress"
	"github.com/abhisek/primate/internal/router"
	"github.com/abhisek/primate/internal/screen"
	"github.com/abhisek/primate/internal/ui/components"
	"github.com/abhisek/primate/internal/ui/layout"
	"github.com/abhisek/primate/internal/ui/theme"
)

const maxNameLength = 40

// SubjectAddedMsg is sent to the screen below once the roster is saved.
type SubjectAddedMsg struct {
	Name string
}

// AddSubjectScreen reads a name, adds it to the roster and saves the
// progress file.
type AddSubjectScreen struct {
	roster *progress.Roster
	path   string
	input  components.TextInput
}

var _ screen.Screen = (*AddSubjectScreen)(nil)
var _ screen.KeyHintProvider = (*AddSubjectScreen)(nil)

// New creates the form for roster, saving to path.
func New(roster *progress.Roster, path string) *AddSubjectScreen {
	return &AddSubjectScreen{
		roster: roster,
		path:   path,
		input:  components.NewTextInput("Subject name", maxNameLength),
	}
}

func (a *AddSubjectScreen) Init() tea.Cmd {
	return a.input.Init()
}

func (a *AddSubjectScreen) Title() string {
	return "Add Subject"
}

func (a *AddSubjectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (a *AddSubjectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return a.submit()
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *AddSubjectScreen) submit() (screen.Screen, tea.Cmd) {
	name := a.input.Value()
	if name == "" {
		a.input.SetError("name is required")
		return a, nil
	}
	if err := a.roster.Add(name); err != nil {
		if errors.Is(err, progress.ErrDuplicateSubject) {
			a.input.SetError("subject already exists")
		} else {
			a.input.SetError(err.Error())
		}
		return a, nil
	}
	if err := progress.Save(a.path, a.roster); err != nil {
		a.input.SetError("save failed: " + err.Error())
		return a, nil
	}
	return a, tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return SubjectAddedMsg{Name: name} },
	)
}

func (a *AddSubjectScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("New subject"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render("The subject starts with no progress and runs every condition."))
	b.WriteString("\n\n")

	box := theme.Card.Width(min(width-4, maxNameLength+10)).Render(a.input.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, box))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
