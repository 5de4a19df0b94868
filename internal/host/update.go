package host

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/updatepanel/internal/logging"
	"github.com/rusenback/updatepanel/internal/model"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.panel = m.panel.SetSize(m.fitPanel())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m.quit()

		case "u":
			if !m.visible {
				m.visible = true
				return m, nil
			}

		case "X":
			m.feed.Clear()
			logging.Info("feed cleared")
			m.push()
			return m, nil
		}

		if !m.visible {
			return m, nil
		}
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd

	case startMsg:
		if m.cancel != nil {
			return m, nil
		}
		m.updates, m.errs, m.cancel = m.src.Stream()
		logging.Info("source started", "source", m.src.Name())
		return m, waitForUpdate(m.updates, m.errs)

	case tickMsg:
		if connected := m.src.Connected(); connected != m.connected {
			logging.Info("connectivity changed", "source", m.src.Name(), "connected", connected)
			m.connected = connected
		}
		m.push()
		m.panel = m.panel.Refresh()
		return m, tickCmd(m.tick)

	case updateMsg:
		m.feed.Push(msg.update)
		m.connected = m.src.Connected()
		m.push()
		return m, waitForUpdate(m.updates, m.errs)

	case streamErrMsg:
		logging.Error("source error", "source", m.src.Name(), "err", msg.err)
		m.feed.Push(model.Update{
			Timestamp: time.Now(),
			Message:   fmt.Sprintf("%s: %v", m.src.Name(), msg.err),
			Level:     model.LevelError,
			Step:      "SOURCE",
		})
		m.connected = m.src.Connected()
		m.push()
		return m, waitForUpdate(m.updates, m.errs)

	case errsClosedMsg:
		m.errs = nil
		return m, waitForUpdate(m.updates, m.errs)

	case streamClosedMsg:
		if m.done {
			return m, nil
		}
		m.done = true
		logging.Info("source finished", "source", m.src.Name())
		m.feed.Push(model.Update{
			Timestamp: time.Now(),
			Message:   fmt.Sprintf("%s finished", m.src.Name()),
			Level:     model.LevelInfo,
			Step:      "SOURCE",
		})
		m.connected = false
		m.push()
		return m, nil

	case hidePanelMsg:
		m.visible = false
		return m, nil
	}

	// Everything else (copy results, status expiry, mouse) belongs to the panel.
	var cmd tea.Cmd
	m.panel, cmd = m.panel.Update(msg)
	return m, cmd
}

// push hands the panel the current feed and connectivity
func (m *Model) push() {
	m.panel = m.panel.SetFeed(m.feed.Snapshot(), m.connected)
}

// quit stops the source and tears the panel down
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.panel = m.panel.Close()
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

// fitPanel returns the panel size for the current window
func (m Model) fitPanel() (int, int) {
	// The floor keeps rows readable but never exceeds the window.
	width := max(m.panelWidth, 20)
	if m.width > 0 {
		width = min(width, m.width)
	}

	// header, help, border and the background lines
	height := m.panelHeight
	if m.height > 0 {
		height = min(height, m.height-backgroundHeight-5)
	}
	return width, max(height, 1)
}
