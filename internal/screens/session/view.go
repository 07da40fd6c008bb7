package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/primate/internal/session"
	"github.com/abhisek/primate/internal/ui/components"
	"github.com/abhisek/primate/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	switch s.phase {
	case phaseStarting:
		return renderLoading(width, height)
	case phaseError:
		return renderError(width, height, s.errMsg)
	case phasePrompt:
		return s.renderPrompt(width, height)
	case phaseTrial, phaseFeedback:
		return s.renderTrial(width, height)
	}
	// Blank screen between trials.
	return ""
}

// renderInfoLine shows the condition and trial progress above the cards.
func (s *SessionScreen) renderInfoLine(width int) string {
	session := s.opts.Session
	total := session.NextTrialIndex() + session.Remaining()
	done := session.NextTrialIndex()

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Condition: %s", s.condition.DisplayName))

	bar := components.NewProgressBar(fmt.Sprintf("Trial %d/%d", done+1, total),
		components.Fraction(done, total), false, min(40, width/2))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(bar.View()) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + bar.View()
	}

	return infoLine + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))) +
		"\n"
}

func (s *SessionScreen) renderPrompt(width, height int) string {
	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")

	video := filepath.Base(s.condition.AssetPath)
	b.WriteString(theme.Subtitle.Width(width).Render("Video: " + video))
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Width(width).Render("Press SPACE to start the trial"))
	return b.String()
}

func (s *SessionScreen) renderTrial(width, height int) string {
	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")

	video := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Info).
		Foreground(theme.Info).
		Width(min(width-8, 60)).
		Align(lipgloss.Center).
		Render("▶ " + filepath.Base(s.condition.AssetPath) + "  [V]")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, video))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderSlots(width)))
	b.WriteString("\n\n")

	if s.phase == phaseFeedback {
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

// renderSlots draws the seven card positions. During feedback only the
// chosen card stays visible.
func (s *SessionScreen) renderSlots(width int) string {
	slotWidth := max((width-8)/slotCount-2, 5)
	const slotHeight = 3

	slots := make([]string, slotCount)
	for i := range slots {
		label := fmt.Sprintf("%d", i+1)
		style := theme.SlotEmpty
		switch {
		case i == s.left && s.cardVisible(sess.CardSafe):
			style = theme.SlotSafe
			label = cardLabel(label, s.images.Left)
		case i == s.right && s.cardVisible(sess.CardRisky):
			style = theme.SlotRisky
			label = cardLabel(label, s.images.Right)
		}
		slots[i] = style.Width(slotWidth).Height(slotHeight).Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, slots...)
}

func (s *SessionScreen) cardVisible(card sess.Card) bool {
	return s.phase == phaseTrial || (s.phase == phaseFeedback && s.chosen == card)
}

func cardLabel(slot, image string) string {
	if image == "" {
		return slot
	}
	return slot + "\n" + strings.TrimSuffix(filepath.Base(image), filepath.Ext(image))
}

func (s *SessionScreen) renderFeedback(width int) string {
	color := theme.SafeCard
	if s.chosen == sess.CardRisky {
		color = theme.RiskyCard
	}
	line := fmt.Sprintf("%s: %d pellet(s)", s.chosen, s.pellets)
	if s.pellets > 0 {
		line += fmt.Sprintf("  dispensed %d", s.dispensed)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(color).
		Bold(true).
		Render(line)
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End the session now?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Progress is saved and the condition resumes next time."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, save and quit"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Assigning condition...")
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
