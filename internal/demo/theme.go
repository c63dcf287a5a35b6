package demo

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/reactea/internal/telemetry"
)

// Color palette shared by every demo program's rendering.
var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
)

var (
	timestampStyle = lipgloss.NewStyle().Foreground(colorGray)
	infoStyle      = lipgloss.NewStyle().Foreground(colorWhite)
	dispatchStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	subStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// Theme holds accent-color-derived styles for the demo TUI.
type Theme struct {
	accentStyle lipgloss.Style
	borderStyle lipgloss.Style
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#7D56F4").
// An empty accentColor falls back to the package default.
func NewTheme(accentColor string) Theme {
	color := "#7D56F4"
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		accentStyle: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c),
	}
}

// HeaderStyle returns the style for the header bar.
func (t Theme) HeaderStyle() lipgloss.Style { return t.accentStyle }

// BorderStyle returns the accent-colored panel border style.
func (t Theme) BorderStyle() lipgloss.Style { return t.borderStyle }

// RenderEventLine renders a telemetry.Event as a single terminal line.
func RenderEventLine(e telemetry.Event) string {
	ts := timestampStyle.Render(fmt.Sprintf("[%s]", e.Timestamp.Format("15:04:05")))

	switch e.Kind {
	case telemetry.EventDispatch:
		return fmt.Sprintf("%s  %s", ts, dispatchStyle.Render("→ "+e.Message))
	case telemetry.EventSub:
		return fmt.Sprintf("%s  %s", ts, subStyle.Render("~ "+e.Message))
	case telemetry.EventError:
		return fmt.Sprintf("%s  %s", ts, errorStyle.Render("x "+e.Message))
	default:
		return fmt.Sprintf("%s  %s", ts, infoStyle.Render(e.Message))
	}
}
