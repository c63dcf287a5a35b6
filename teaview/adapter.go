// Package teaview binds a platform.Runtime to github.com/charmbracelet/bubbletea
// so any bubbletea-capable terminal can render the runtime's model stream.
// It is a concrete instance of the view adapter described in package view:
// it subscribes to the model stream and forwards dispatch calls, adding no
// scheduler semantics of its own.
//
// The wiring follows the same waitForEvent/Init/Update/View shape an
// application hand-wires directly against bubbletea when it drains an
// external channel into the event loop: Init kicks off a command that blocks
// on the model stream, and every model emission handled by Update re-arms
// that same command so the loop keeps draining for as long as the program
// runs.
package teaview

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/reactea/platform"
)

// modelMsg wraps a model emission (or stream closure) as a bubbletea Msg.
type modelMsg[M any] struct {
	model M
	ok    bool
}

// KeyBinding translates a bubbletea key press into an application message.
// The second return value reports whether msg maps to anything; false
// leaves the key unhandled.
type KeyBinding[Msg any] func(tea.KeyMsg) (Msg, bool)

// Adapter implements tea.Model by wrapping a platform.Runtime. Construct one
// with New and hand it to tea.NewProgram.
type Adapter[M comparable, Msg any] struct {
	rt      *platform.Runtime[M, Msg]
	render  func(M) string
	keys    KeyBinding[Msg]
	modelCh <-chan M

	busy func(M) bool
	spin spinner.Model

	current M
	width   int
	height  int
}

// Option configures optional Adapter behavior.
type Option[M any] func(*adapterOptions[M])

type adapterOptions[M any] struct {
	busy func(M) bool
}

// WithSpinner arms a bubbles/spinner that starts ticking at Init and keeps
// ticking for the life of the adapter; its frame is appended to View's
// output only while busy(model) reports true. Use it for models
// that track an in-flight command (e.g. an HTTP fetch) so the terminal shows
// activity while waiting on the runtime's model stream.
func WithSpinner[M any](busy func(M) bool) Option[M] {
	return func(o *adapterOptions[M]) { o.busy = busy }
}

// New creates an Adapter. render maps the current model to the screen
// contents bubbletea should display; keys (may be nil) translates key
// presses into messages dispatched back into rt.
func New[M comparable, Msg any](rt *platform.Runtime[M, Msg], render func(M) string, keys KeyBinding[Msg], opts ...Option[M]) *Adapter[M, Msg] {
	var o adapterOptions[M]
	for _, opt := range opts {
		opt(&o)
	}
	return &Adapter[M, Msg]{
		rt:      rt,
		render:  render,
		keys:    keys,
		modelCh: rt.Model(),
		busy:    o.busy,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init returns the command that starts draining the runtime's model stream,
// batched with the spinner's tick command when a busy predicate is armed.
func (a *Adapter[M, Msg]) Init() tea.Cmd {
	if a.busy != nil {
		return tea.Batch(waitForModel(a.modelCh), a.spin.Tick)
	}
	return waitForModel(a.modelCh)
}

// waitForModel blocks on ch and returns the next model (or stream closure)
// as a bubbletea message.
func waitForModel[M any](ch <-chan M) tea.Cmd {
	return func() tea.Msg {
		m, ok := <-ch
		return modelMsg[M]{model: m, ok: ok}
	}
}

// Update handles bubbletea messages: model emissions update the rendered
// state and re-arm the listener; window size is tracked for View; key
// presses are translated via keys and dispatched into the runtime.
func (a *Adapter[M, Msg]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case modelMsg[M]:
		if !msg.ok {
			return a, tea.Quit
		}
		a.current = msg.model
		return a, waitForModel(a.modelCh)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.rt.Shutdown()
			return a, tea.Quit
		}
		if a.keys != nil {
			if appMsg, ok := a.keys(msg); ok {
				a.rt.Dispatch(appMsg)
			}
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	return a, nil
}

// View renders the current model, appending the spinner frame while busy
// reports the model as having a command in flight.
func (a *Adapter[M, Msg]) View() string {
	out := a.render(a.current)
	if a.busy != nil && a.busy(a.current) {
		out += " " + a.spin.View()
	}
	return out
}
