package panel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/updatepanel/internal/logging"
)

// ToggleMinimize flips between the full panel and the header alone.
// Minimizing drops the list, and with it any expanded row.
func (m Model) ToggleMinimize() Model {
	m.minimized = !m.minimized
	if m.minimized {
		m.selected = noSelection
	}
	m.syncContent()
	return m
}

// RequestHide asks the host to hide the panel. The panel keeps no
// visibility state of its own.
func (m Model) RequestHide() tea.Cmd {
	if m.onToggle == nil {
		return nil
	}
	return m.onToggle
}

// Select expands row i, or collapses it if it is already expanded.
// At most one row is expanded at a time.
func (m Model) Select(i int) Model {
	if i < 0 || i >= len(m.updates) {
		return m
	}
	if m.selected == i {
		m.selected = noSelection
	} else {
		m.selected = i
	}
	m.syncContent()
	m.ensureVisible(i)
	return m
}

// MoveCursor moves the row highlight by delta, keeping it on screen.
func (m Model) MoveCursor(delta int) Model {
	if len(m.updates) == 0 {
		return m
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.updates)-1)
	m.syncContent()
	m.ensureVisible(m.cursor)
	return m
}

// CopyOne copies the message of row i. It does not expand or collapse
// the row.
func (m Model) CopyOne(i int) (Model, tea.Cmd) {
	if i < 0 || i >= len(m.updates) {
		return m, nil
	}
	return m.startCopy(m.updates[i].DisplayMessage())
}

// CopyAll copies every update, in rendered order.
func (m Model) CopyAll() (Model, tea.Cmd) {
	return m.startCopy(FormatAll(m.updates, m.formatTime))
}

// startCopy supersedes any pending status expiry and starts the write.
func (m Model) startCopy(text string) (Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	m.expiry.cancel()
	m.copySeq++
	return m, writeClipboard(m.clip, text, m.copySeq)
}

// finishCopy records a clipboard result and arms its expiry.
func (m Model) finishCopy(msg copyResultMsg) (Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	// Writes run concurrently; a result from a superseded copy is dropped.
	if msg.seq != m.copySeq {
		logging.Debug("stale clipboard result", "seq", msg.seq, "latest", m.copySeq, "err", msg.err)
		return m, nil
	}
	if msg.err != nil {
		logging.Warn("clipboard write failed", "seq", msg.seq, "err", msg.err)
		m.status = StatusFailed
	} else {
		m.status = StatusCopied
	}
	token := m.expiry.arm()
	return m, expireStatus(m.statusDelay, token)
}

// clearStatus clears the status if token belongs to the latest copy.
func (m Model) clearStatus(msg statusExpiredMsg) Model {
	if m.expiry.fire(msg.token) {
		m.status = StatusIdle
	}
	return m
}
