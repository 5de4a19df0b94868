package panel

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the panel state
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case copyResultMsg:
		return m.finishCopy(msg)

	case statusExpiredMsg:
		return m.clearStatus(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.minimized || len(m.updates) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Header actions work whether or not the list is shown.
	switch {
	case key.Matches(msg, m.keys.Minimize):
		return m.ToggleMinimize(), nil
	case key.Matches(msg, m.keys.Close):
		return m, m.RequestHide()
	case key.Matches(msg, m.keys.CopyAll):
		return m.CopyAll()
	}

	if m.minimized || len(m.updates) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.MoveCursor(-1), nil
	case key.Matches(msg, m.keys.Down):
		return m.MoveCursor(1), nil
	case key.Matches(msg, m.keys.Expand):
		return m.Select(m.cursor), nil
	case key.Matches(msg, m.keys.CopyOne):
		return m.CopyOne(m.cursor)
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}
