package demo

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// LogView is a scrollable telemetry log panel wrapping bubbles/viewport. In
// follow mode (the default) every appended line scrolls the view to the
// bottom; scrolling manually disables follow until explicitly re-enabled.
type LogView struct {
	vp     viewport.Model
	lines  []string
	follow bool
}

// NewLogView creates a LogView with the given dimensions, initially in
// follow mode.
func NewLogView(w, h int) LogView {
	return LogView{vp: viewport.New(w, h), follow: true}
}

// AppendLine appends a pre-rendered line, scrolling to the bottom if
// following.
func (v LogView) AppendLine(rendered string) LogView {
	v.lines = append(v.lines, rendered)
	v.vp.SetContent(strings.Join(v.lines, "\n"))
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// SetSize resizes the log view.
func (v LogView) SetSize(w, h int) LogView {
	v.vp.Width = w
	v.vp.Height = h
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// ToggleFollow switches follow mode, scrolling to the bottom when turned on.
func (v LogView) ToggleFollow() LogView {
	v.follow = !v.follow
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// Update forwards scroll/mouse messages to the underlying viewport, exiting
// follow mode if the user scrolls away from the bottom.
func (v LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	if v.follow && !v.vp.AtBottom() {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			v.follow = false
		}
	}
	return v, cmd
}

// View renders the log view content.
func (v LogView) View() string {
	return v.vp.View()
}
