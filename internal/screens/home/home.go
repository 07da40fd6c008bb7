package home

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/primate/internal/progress"
	"github.com/abhisek/primate/internal/router"
	"github.com/abhisek/primate/internal/scheduler"
	"github.com/abhisek/primate/internal/screen"
	"github.com/abhisek/primate/internal/screens/addsubject"
	"github.com/abhisek/primate/internal/ui/components"
	"github.com/abhisek/primate/internal/ui/layout"
)

const (
	labelAddSubject = "ADD SUBJECT"
	labelExit       = "EXIT"
)

// Deps wires the home screen to the roster and to the trial screen.
type Deps struct {
	Roster       *progress.Roster
	Scheduler    *scheduler.Scheduler
	ProgressPath string

	// NewTrial builds the screen that runs trials for subject.
	NewTrial func(subject string) screen.Screen
}

// HomeScreen lists the subjects. Subjects with nothing left to run are
// shown disabled.
type HomeScreen struct {
	deps      Deps
	menu      components.Menu
	labels    []string
	disabled  map[int]bool
	doneCount int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.rebuild("")
	return h
}

// rebuild recomputes the menu from the roster, selecting the subject named
// selectName when it is enabled.
func (h *HomeScreen) rebuild(selectName string) {
	var items []components.MenuItem
	h.labels = nil
	h.disabled = make(map[int]bool)
	h.doneCount = 0

	for _, subj := range h.deps.Roster.Subjects() {
		name := subj.Name
		done := h.deps.Scheduler.IsDone(subj)
		if done {
			h.doneCount++
			h.disabled[len(items)] = true
		}
		items = append(items, components.MenuItem{
			Label:    name,
			Disabled: done,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: h.deps.NewTrial(name)}
				}
			},
		})
		h.labels = append(h.labels, name)
	}

	items = append(items,
		components.MenuItem{Label: labelAddSubject, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: addsubject.New(h.deps.Roster, h.deps.ProgressPath)}
			}
		}},
		components.MenuItem{Label: labelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	h.labels = append(h.labels, labelAddSubject, labelExit)

	h.menu = components.NewMenu(items)
	for i, item := range items {
		if item.Label == selectName && !item.Disabled {
			h.menu.Selected = i
			break
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if added, ok := msg.(addsubject.SubjectAddedMsg); ok {
		h.rebuild(added.Name)
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)

	sections := []string{
		renderTitle(cw, compact),
		renderRosterBar(len(h.deps.Roster.Subjects()), h.doneCount, h.deps.Scheduler.TotalTrials(), cw),
	}
	if compact || len(h.labels) > 8 {
		sections = append(sections, renderMenuCompact(h.labels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(h.labels, h.menu.Selected, cw, h.disabled))
	}

	return renderCabinetFrame(joinSections(sections), width, height)
}

func (h *HomeScreen) Title() string {
	return "Subjects"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
