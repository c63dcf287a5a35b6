package main

import (
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/reactea/internal/demo"
	"github.com/LISSConsulting/reactea/internal/telemetry"
	"github.com/LISSConsulting/reactea/teaview"
)

// logEventMsg wraps a telemetry.Event delivered over the logger's Events
// channel as a bubbletea message.
type logEventMsg telemetry.Event

// waitForLogEvent blocks on ch and returns the next telemetry event as a
// bubbletea message. A closed channel yields no further messages.
func waitForLogEvent(ch <-chan telemetry.Event) bubbletea.Cmd {
	return func() bubbletea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return logEventMsg(e)
	}
}

// dashboard composes a demo program's teaview.Adapter with a telemetry
// LogView, styled by Theme: a header bar above the program's own rendering,
// and a scrolling event log beneath it.
type dashboard[M comparable, Msg any] struct {
	title string
	theme demo.Theme

	adapter *teaview.Adapter[M, Msg]
	log     demo.LogView
	events  <-chan telemetry.Event
}

func newDashboard[M comparable, Msg any](title string, theme demo.Theme, adapter *teaview.Adapter[M, Msg], events <-chan telemetry.Event) *dashboard[M, Msg] {
	return &dashboard[M, Msg]{
		title:   title,
		theme:   theme,
		adapter: adapter,
		log:     demo.NewLogView(76, 8),
		events:  events,
	}
}

func (d *dashboard[M, Msg]) Init() bubbletea.Cmd {
	return bubbletea.Batch(d.adapter.Init(), waitForLogEvent(d.events))
}

func (d *dashboard[M, Msg]) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case logEventMsg:
		d.log = d.log.AppendLine(demo.RenderEventLine(telemetry.Event(msg)))
		return d, waitForLogEvent(d.events)

	case bubbletea.WindowSizeMsg:
		logHeight := msg.Height/3 - 2
		if logHeight < 3 {
			logHeight = 3
		}
		d.log = d.log.SetSize(msg.Width-4, logHeight)
	}

	_, adapterCmd := d.adapter.Update(msg)
	logModel, logCmd := d.log.Update(msg)
	d.log = logModel
	return d, bubbletea.Batch(adapterCmd, logCmd)
}

func (d *dashboard[M, Msg]) View() string {
	header := d.theme.HeaderStyle().Render(" " + d.title + " ")
	body := d.theme.BorderStyle().Render(d.adapter.View())
	logPanel := d.theme.BorderStyle().Render(d.log.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, body, logPanel)
}
