// Package view adds a thin projection on top of package platform: it maps
// every model the runtime produces through a user-supplied view function to
// produce a stream of Dom values for any host renderer. It adds no
// scheduler semantics of its own.
package view

import (
	"context"

	"github.com/LISSConsulting/reactea"
	"github.com/LISSConsulting/reactea/platform"
)

// ViewRuntime extends platform.Runtime with a Dom stream. The embedded
// Runtime's Dispatch, Model, and Shutdown behave exactly as documented
// there.
type ViewRuntime[M comparable, Msg, Dom any] struct {
	*platform.Runtime[M, Msg]
	domCh chan Dom
}

// ProgramView constructs a Runtime via platform.Program and wires its model
// stream through view to build dom$ = model$.map(m => view(m)(dispatch)).
// The dispatch function passed to view is the runtime's own Dispatch, so
// renderer callbacks close over a stable reference across every update.
func ProgramView[M comparable, Msg, Dom any](
	ctx context.Context,
	init func() (M, tea.Cmd[Msg]),
	update func(Msg, M) (M, tea.Cmd[Msg]),
	view func(M) func(func(Msg)) Dom,
	subscriptions func(M) tea.Sub[Msg],
) *ViewRuntime[M, Msg, Dom] {
	rt := platform.Program(ctx, init, update, subscriptions)
	vr := &ViewRuntime[M, Msg, Dom]{
		Runtime: rt,
		domCh:   make(chan Dom),
	}
	models := rt.Model()
	go func() {
		defer close(vr.domCh)
		for m := range models {
			vr.domCh <- view(m)(rt.Dispatch)
		}
	}()
	return vr
}

// Dom returns the projected Dom stream. It closes once the underlying model
// stream closes, i.e. once the program terminates.
func (vr *ViewRuntime[M, Msg, Dom]) Dom() <-chan Dom {
	return vr.domCh
}

// RunView returns the program's Dom stream; equivalent to vr.Dom().
func RunView[M comparable, Msg, Dom any](vr *ViewRuntime[M, Msg, Dom]) <-chan Dom {
	return vr.Dom()
}

// RunViewWith drains the program's Dom stream into render. The returned
// channel closes once the stream ends.
func RunViewWith[M comparable, Msg, Dom any](vr *ViewRuntime[M, Msg, Dom], render func(Dom)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for dom := range vr.Dom() {
			render(dom)
		}
	}()
	return done
}
