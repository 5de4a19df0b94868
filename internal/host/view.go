package host

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// backgroundHeight is the number of lines renderBackground produces.
const backgroundHeight = 2

// View renders the background status lines with the panel docked in the
// bottom-right corner.
func (m Model) View() string {
	bg := m.renderBackground()
	if !m.visible {
		return bg
	}

	p := m.panel.View()
	if m.width == 0 || m.height == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, bg, p)
	}

	area := lipgloss.Place(m.width, max(m.height-backgroundHeight, lipgloss.Height(p)),
		lipgloss.Right, lipgloss.Bottom, p)
	return lipgloss.JoinVertical(lipgloss.Left, bg, area)
}

// renderBackground renders the source line and the host key help
func (m Model) renderBackground() string {
	state := stoppedStyle.Render("disconnected")
	if m.connected {
		state = runningStyle.Render("connected")
	}
	status := fmt.Sprintf("%s %s · %s · %d updates",
		titleStyle.Render("updatepanel"), m.src.Name(), state, m.feed.Len())
	if m.done {
		status += " · finished"
	}

	hint := "u show panel · X clear · q quit"
	if m.visible {
		hint = "X clear · q quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, helpStyle.Render(hint))
}
