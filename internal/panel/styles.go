package panel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rusenback/updatepanel/internal/model"
)

// levelStyle is the icon and colors for one level.
type levelStyle struct {
	icon   string
	accent lipgloss.Color
	bg     lipgloss.Color
}

// levelStyles is indexed by model.Level and must cover every level.
var levelStyles = [...]levelStyle{
	model.LevelDefault: {icon: "🔄", accent: lipgloss.Color("#9399B2"), bg: lipgloss.Color("#2A2B3C")}, // gray
	model.LevelSuccess: {icon: "✅", accent: lipgloss.Color("#A6E3A1"), bg: lipgloss.Color("#1F3329")}, // green
	model.LevelError:   {icon: "❌", accent: lipgloss.Color("#F38BA8"), bg: lipgloss.Color("#3B1F28")}, // red
	model.LevelWarning: {icon: "⚠️", accent: lipgloss.Color("#F9E2AF"), bg: lipgloss.Color("#3A3222")}, // yellow
	model.LevelInfo:    {icon: "ℹ️", accent: lipgloss.Color("#89B4FA"), bg: lipgloss.Color("#1E2A3F")}, // blue
}

// Compile-time check that levelStyles has exactly one entry per level.
var (
	_ [len(levelStyles) - int(model.LevelCount)]struct{}
	_ [int(model.LevelCount) - len(levelStyles)]struct{}
)

// styleFor returns the style for l, falling back to the default level.
func styleFor(l model.Level) levelStyle {
	return levelStyles[l.Normalize()]
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4BEFE"))

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#CBA6F7")).
			Padding(0, 1)

	connectedDot    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Render("●")
	disconnectedDot = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Render("●")

	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8"))

	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	stepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBA6F7"))

	detailsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BAC2DE")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#585B70")).
			PaddingLeft(1)

	copiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))

	emptyIconStyle = lipgloss.NewStyle().Padding(1, 0, 0, 0)
	emptyTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8"))
	emptyHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	cursorMarker = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA")).Render("›")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#585B70")).
			Padding(0, 1)
)

// rowStyle returns the container style for a row of level l.
func rowStyle(l model.Level, width int) lipgloss.Style {
	s := styleFor(l)
	return lipgloss.NewStyle().
		Width(width).
		Background(s.bg).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(s.accent).
		BorderBackground(s.bg)
}
