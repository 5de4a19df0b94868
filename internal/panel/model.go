// Package panel is the floating live-updates panel: it renders the feed
// pushed by its host and owns the panel's own interaction state
// (minimized, expanded row, copy feedback).
package panel

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/updatepanel/internal/clipboard"
	"github.com/rusenback/updatepanel/internal/feed"
	"github.com/rusenback/updatepanel/internal/model"
)

const (
	DefaultWidth       = 64
	DefaultListHeight  = 12
	DefaultStatusDelay = 2 * time.Second

	// noSelection marks that no row is expanded.
	noSelection = -1
)

// CopyStatus is the transient copy feedback.
type CopyStatus int

const (
	StatusIdle CopyStatus = iota
	StatusCopied
	StatusFailed
)

// Text returns the message shown for the status.
func (s CopyStatus) Text() string {
	switch s {
	case StatusCopied:
		return "Copied!"
	case StatusFailed:
		return "Failed to copy"
	default:
		return ""
	}
}

// Model represents the panel state
type Model struct {
	keys        KeyMap
	help        help.Model
	clip        clipboard.Writer
	onToggle    func() tea.Msg
	formatTime  TimeFormatter
	statusDelay time.Duration
	width       int
	listHeight  int

	// Pushed by the host
	updates   []model.Update
	connected bool
	version   uint64
	hasFeed   bool

	// Local interaction state
	minimized bool
	selected  int
	cursor    int
	status    CopyStatus
	copySeq   uint64
	expiry    expiry
	closed    bool

	viewport   viewport.Model
	rowOffsets []int // first content line of each row
	rowEnds    []int // one past the last content line of each row
}

// Option configures a Model.
type Option func(*Model)

// WithClipboard sets the clipboard writer used by the copy actions.
func WithClipboard(w clipboard.Writer) Option {
	return func(m *Model) { m.clip = w }
}

// WithOnToggle sets the callback run when the user asks to hide the
// panel. Its message is delivered to the host.
func WithOnToggle(fn func() tea.Msg) Option {
	return func(m *Model) { m.onToggle = fn }
}

// WithTimeFormatter sets how timestamps are displayed and exported.
func WithTimeFormatter(f TimeFormatter) Option {
	return func(m *Model) {
		if f != nil {
			m.formatTime = f
		}
	}
}

// WithStatusDelay sets how long copy feedback stays visible.
func WithStatusDelay(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.statusDelay = d
		}
	}
}

// WithSize sets the panel width and the list viewport height.
func WithSize(width, listHeight int) Option {
	return func(m *Model) {
		if width > 0 {
			m.width = width
		}
		if listHeight > 0 {
			m.listHeight = listHeight
		}
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// New creates a panel with no feed yet.
func New(opts ...Option) Model {
	m := Model{
		keys:        DefaultKeyMap(),
		help:        help.New(),
		formatTime:  ClockFormatter(""),
		statusDelay: DefaultStatusDelay,
		width:       DefaultWidth,
		listHeight:  DefaultListHeight,
		selected:    noSelection,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.viewport = viewport.New(m.innerWidth(), m.listHeight)
	m.viewport.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
	}
	m.syncContent()
	return m
}

// Init returns no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetFeed is the host push. The scroll position returns to the top only
// when snap carries a version the panel has not seen; a push that only
// changes connectivity leaves scrolling alone.
func (m Model) SetFeed(snap feed.Snapshot, connected bool) Model {
	m.connected = connected
	if m.hasFeed && snap.Version == m.version {
		return m
	}

	m.updates = snap.Updates
	m.version = snap.Version
	m.hasFeed = true
	m.cursor = 0
	m.syncContent()
	m.viewport.GotoTop()
	return m
}

// SetSize fits the panel into the space the host can give it.
func (m Model) SetSize(width, listHeight int) Model {
	if width > 0 {
		m.width = width
	}
	if listHeight > 0 {
		m.listHeight = listHeight
	}
	m.viewport.Width = m.innerWidth()
	m.viewport.Height = m.listHeight
	m.help.Width = m.innerWidth()
	m.syncContent()
	return m
}

// Refresh re-renders the rows in place, keeping scroll and selection.
// Relative timestamps go stale without it.
func (m Model) Refresh() Model {
	m.syncContent()
	return m
}

// Close tears the panel down. Any pending status expiry is cancelled and
// late clipboard results are ignored.
func (m Model) Close() Model {
	m.expiry.cancel()
	m.closed = true
	return m
}

// Updates returns the feed currently rendered.
func (m Model) Updates() []model.Update { return m.updates }

// Connected reports the last connectivity flag pushed by the host.
func (m Model) Connected() bool { return m.connected }

// Minimized reports whether only the header is shown.
func (m Model) Minimized() bool { return m.minimized }

// Selected returns the expanded row index and whether one is expanded.
func (m Model) Selected() (int, bool) {
	if m.selected == noSelection {
		return 0, false
	}
	return m.selected, true
}

// Cursor returns the highlighted row.
func (m Model) Cursor() int { return m.cursor }

// Status returns the current copy feedback.
func (m Model) Status() CopyStatus { return m.status }

// ScrollOffset returns the list viewport's first visible line.
func (m Model) ScrollOffset() int { return m.viewport.YOffset }

// Width returns the rendered panel width.
func (m Model) Width() int { return m.width }

func (m Model) innerWidth() int {
	w := m.width - panelStyle.GetHorizontalFrameSize()
	if w < 10 {
		w = 10
	}
	return w
}
