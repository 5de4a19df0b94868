package panel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/updatepanel/internal/clipboard"
)

// copyResultMsg reports the outcome of one clipboard write.
type copyResultMsg struct {
	seq uint64
	err error
}

// statusExpiredMsg asks the panel to clear the copy status.
type statusExpiredMsg struct {
	token uint64
}

// writeClipboard creates a command that writes text to the clipboard
func writeClipboard(w clipboard.Writer, text string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return copyResultMsg{seq: seq, err: clipboard.ErrUnavailable}
		}
		return copyResultMsg{seq: seq, err: w.Write(text)}
	}
}

// expireStatus creates a command that fires once after delay
func expireStatus(delay time.Duration, token uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return statusExpiredMsg{token: token}
	})
}
