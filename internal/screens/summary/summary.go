package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/primate/internal/screen"
	"github.com/abhisek/primate/internal/session"
	"github.com/abhisek/primate/internal/ui/layout"
	"github.com/abhisek/primate/internal/ui/theme"
)

// SummaryScreen announces a completed condition. Any key exits the program.
type SummaryScreen struct {
	summary     session.Summary
	displayName string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)
var _ screen.BackBlocker = (*SummaryScreen)(nil)

// New creates a new SummaryScreen for the condition shown as displayName.
func New(summary session.Summary, displayName string) *SummaryScreen {
	return &SummaryScreen{summary: summary, displayName: displayName}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Condition Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "any key", Description: "Exit"},
	}
}

func (s *SummaryScreen) Status() (string, string) {
	return s.summary.Subject, s.displayName
}

func (s *SummaryScreen) BlocksBack() bool {
	return true
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return s, tea.Quit
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("'%s' completed condition '%s'", sum.Subject, s.displayName)))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Session time: %d:%02d   Resumed at trial %d", mins, secs, sum.ResumeTrialIndex+1)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Render(
		fmt.Sprintf("Trials: %d        Pellets: %d", sum.TrialsRun, sum.Pellets)))
	b.WriteString("\n")
	b.WriteString(center.Render(
		lipgloss.NewStyle().Foreground(theme.SafeCard).Bold(true).Render(fmt.Sprintf("Green: %d", sum.SafeChoices)) +
			"        " +
			lipgloss.NewStyle().Foreground(theme.RiskyCard).Bold(true).Render(fmt.Sprintf("Red: %d (%.0f%%)", sum.RiskyChoices, sum.RiskyRate()*100))))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("Press any key to exit"))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}
