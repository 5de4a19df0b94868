package host

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/updatepanel/internal/model"
)

// tickCmd sends a tick message after d
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForUpdate waits for the next update or error from the source.
// A closed update channel means the source has stopped.
func waitForUpdate(updates <-chan model.Update, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case u, ok := <-updates:
			if !ok {
				return streamClosedMsg{}
			}
			return updateMsg{update: u}
		case err, ok := <-errs:
			if !ok {
				return errsClosedMsg{}
			}
			return streamErrMsg{err: err}
		}
	}
}
