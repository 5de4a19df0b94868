package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rusenback/updatepanel/internal/model"
)

// View renders the panel
func (m Model) View() string {
	sections := []string{m.renderHeader()}

	if !m.minimized {
		if len(m.updates) == 0 {
			sections = append(sections, m.renderEmpty())
		} else {
			sections = append(sections, m.viewport.View(), m.help.View(m.keys))
		}
	}

	return panelStyle.
		Width(m.width - panelStyle.GetHorizontalBorderSize()).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderHeader renders the status dot, title, count and actions, plus
// the copy feedback line when there is one
func (m Model) renderHeader() string {
	dot := disconnectedDot
	if m.connected {
		dot = connectedDot
	}
	left := dot + " " + titleStyle.Render("Live Updates") + " " + badgeStyle.Render(fmt.Sprintf("%d", len(m.updates)))

	minimize := "m min"
	if m.minimized {
		minimize = "m restore"
	}
	right := actionStyle.Render("y copy all · " + minimize + " · x close")

	width := m.innerWidth()
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	header := left
	if gap >= 1 {
		header = left + strings.Repeat(" ", gap) + right
	}

	switch m.status {
	case StatusCopied:
		header += "\n" + copiedStyle.Render("✓ "+m.status.Text())
	case StatusFailed:
		header += "\n" + failedStyle.Render("✗ "+m.status.Text())
	}
	return header
}

// renderEmpty renders the placeholder shown before any update arrives
func (m Model) renderEmpty() string {
	lines := lipgloss.JoinVertical(lipgloss.Center,
		emptyIconStyle.Render("📭"),
		emptyTextStyle.Render("No updates yet"),
		emptyHintStyle.Render("Updates from the running process will appear here"),
	)
	return lipgloss.PlaceHorizontal(m.innerWidth(), lipgloss.Center, lines)
}

// syncContent re-renders the rows into the viewport and records where
// each row starts so the cursor can be kept on screen.
func (m *Model) syncContent() {
	// The list is not shown while minimized; leave the viewport as it is.
	if m.minimized {
		return
	}
	if len(m.updates) == 0 {
		m.rowOffsets = nil
		m.rowEnds = nil
		m.viewport.SetContent("")
		return
	}

	rows := make([]string, len(m.updates))
	offsets := make([]int, len(m.updates))
	ends := make([]int, len(m.updates))
	line := 0
	for i, u := range m.updates {
		rows[i] = m.renderRow(i, u)
		offsets[i] = line
		line += lipgloss.Height(rows[i])
		ends[i] = line
	}

	m.rowOffsets = offsets
	m.rowEnds = ends
	m.viewport.SetContent(strings.Join(rows, "\n"))
}

// ensureVisible scrolls the least amount needed to show row i
func (m *Model) ensureVisible(i int) {
	if i < 0 || i >= len(m.rowOffsets) {
		return
	}
	top, end := m.rowOffsets[i], m.rowEnds[i]
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case end > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(min(top, end-m.viewport.Height))
	}
}

// renderRow renders one update, expanded if it is the selected row
func (m Model) renderRow(i int, u model.Update) string {
	width := m.innerWidth() - 1 // row border
	style := styleFor(u.Level)

	marker := " "
	if i == m.cursor {
		marker = cursorMarker
	}

	ts := timestampStyle.Render(m.formatTime(u.Timestamp))
	prefix := marker + " " + style.icon + " "
	if u.Step != "" {
		prefix += stepStyle.Render("["+u.Step+"]") + " "
	}

	// One column of slack so wide glyphs never wrap the row.
	lineWidth := width - 1
	msgWidth := lineWidth - lipgloss.Width(prefix) - lipgloss.Width(ts) - 1
	msg := truncate(firstLine(u.DisplayMessage()), msgWidth)
	gap := lineWidth - lipgloss.Width(prefix) - lipgloss.Width(msg) - lipgloss.Width(ts)
	if gap < 1 {
		gap = 1
	}
	lines := []string{prefix + msg + strings.Repeat(" ", gap) + ts}

	if i == m.selected {
		lines = append(lines, m.renderExpanded(u, width)...)
	}

	return rowStyle(u.Level, width).Render(strings.Join(lines, "\n"))
}

// renderExpanded renders the full message, details and step of an update
func (m Model) renderExpanded(u model.Update, width int) []string {
	body := lipgloss.NewStyle().Width(width - 2).PaddingLeft(2)

	lines := []string{body.Render(u.DisplayMessage())}
	if u.HasDetails() {
		lines = append(lines, body.Render(detailsStyle.Render(u.PrettyDetails())))
	}
	if u.Step != "" {
		lines = append(lines, body.Render(stepStyle.Render("Step: "+u.Step)))
	}
	return lines
}
