// Package platform is the Model-Update-Subscription scheduler: it owns the
// model as reactive state, serializes message processing through a single
// update loop, executes commands concurrently, and reacts to model changes
// by switching the active subscription. See the package-level invariants
// documented on Runtime for the guarantees callers can rely on.
package platform

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/LISSConsulting/reactea"
)

// Runtime is the handle a running program exposes to its host: Dispatch to
// enqueue a message, Model to observe the stream of model states, Shutdown
// to tear everything down. A Runtime is created by Program or
// ProgramWithFlags and lives for the duration of the context passed to them,
// or until Shutdown is called — whichever comes first.
//
// The model type M must be comparable so the runtime can detect consecutive
// duplicate writes (see cell.write): for pointer- or interface-shaped models
// this is reference equality, exactly as the spec requires; for plain value
// models built fresh by update it is ordinary value equality.
type Runtime[M comparable, Msg any] struct {
	ctx    context.Context
	cancel context.CancelFunc

	cell  *cell[M]
	queue *queue[Msg]

	update func(Msg, M) (M, tea.Cmd[Msg])

	wg   sync.WaitGroup
	done chan struct{}

	shuttingDown atomic.Bool
	shutdownOnce sync.Once

	errOnce sync.Once
	errCh   chan error
}

// Program constructs and starts a Runtime. init supplies the initial model
// and an initial command, which the update loop starts on its own goroutine
// before taking any message; Program does not wait for it. update and
// subscriptions drive the program for as
// long as ctx is live; cancelling ctx has the same effect as calling
// Shutdown on the returned Runtime.
func Program[M comparable, Msg any](
	ctx context.Context,
	init func() (M, tea.Cmd[Msg]),
	update func(Msg, M) (M, tea.Cmd[Msg]),
	subscriptions func(M) tea.Sub[Msg],
) *Runtime[M, Msg] {
	rctx, cancel := context.WithCancel(ctx)
	m0, cmd0 := init()

	r := &Runtime[M, Msg]{
		ctx:    rctx,
		cancel: cancel,
		cell:   newCell(m0),
		queue:  newQueue[Msg](),
		update: update,
		done:   make(chan struct{}),
		errCh:  make(chan error, 1),
	}

	r.wg.Add(2)
	go r.runUpdate(cmd0)
	go r.runSubscriptions(subscriptions)

	go func() {
		r.wg.Wait()
		close(r.done)
	}()
	go func() {
		<-rctx.Done()
		r.Shutdown()
	}()
	go func() {
		<-r.done
		r.errOnce.Do(func() { close(r.errCh) })
	}()

	return r
}

// ProgramWithFlags returns a constructor variant that accepts external
// initialization parameters (flags), deferring the Program call until the
// caller supplies them.
func ProgramWithFlags[Flags, M comparable, Msg any](
	ctx context.Context,
	initFromFlags func(Flags) (M, tea.Cmd[Msg]),
	update func(Msg, M) (M, tea.Cmd[Msg]),
	subscriptions func(M) tea.Sub[Msg],
) func(Flags) *Runtime[M, Msg] {
	return func(flags Flags) *Runtime[M, Msg] {
		return Program(ctx, func() (M, tea.Cmd[Msg]) { return initFromFlags(flags) }, update, subscriptions)
	}
}

// Dispatch enqueues msg for processing by the update loop. Safe to call from
// any goroutine, including from inside a command, a subscription, or a view.
// Returns immediately without waiting for msg to be processed. A no-op once
// the program has started shutting down.
func (r *Runtime[M, Msg]) Dispatch(msg Msg) {
	if r.shuttingDown.Load() {
		return
	}
	r.queue.push(msg)
}

// Model returns a channel that immediately delivers the current model, then
// every subsequent distinct model written by the update loop, in write
// order. The channel closes once the program terminates.
func (r *Runtime[M, Msg]) Model() <-chan M {
	ch, unsubscribe := r.cell.subscribe()
	go func() {
		<-r.ctx.Done()
		unsubscribe()
	}()
	return ch
}

// Shutdown stops the program: it cancels the scope, which interrupts the
// update loop and the subscription loop, which in turn cancels every
// in-flight command and subscription and runs their disposers. Idempotent.
func (r *Runtime[M, Msg]) Shutdown() {
	r.shutdownOnce.Do(func() {
		r.shuttingDown.Store(true)
		r.cancel()
		r.queue.close()
	})
}

// Err returns a channel that receives the first unhandled command, panic,
// bug in most programs, or failing-subscription error the runtime observed.
// It is closed (with the zero value) if the program terminates without one.
func (r *Runtime[M, Msg]) Err() <-chan error {
	return r.errCh
}

func (r *Runtime[M, Msg]) reportErr(err error) {
	r.errOnce.Do(func() {
		r.errCh <- err
		close(r.errCh)
	})
	r.Shutdown()
}

// runUpdate is the single-consumer update loop. It must read the model after
// taking the message, never before, so update always observes the model as
// written by the immediately preceding update — not a snapshot from fiber
// start.
func (r *Runtime[M, Msg]) runUpdate(init tea.Cmd[Msg]) {
	defer r.wg.Done()
	r.spawnCmd(init)

	for {
		msg, ok := r.queue.take()
		if !ok {
			return
		}
		if r.shuttingDown.Load() {
			return
		}
		m := r.cell.current()
		m2, cmd2 := r.safeUpdate(msg, m)
		r.cell.write(m2)
		r.spawnCmd(cmd2)
	}
}

// safeUpdate recovers a panic inside user update code, reports it on the
// error channel, and re-panics so the failure still surfaces to whatever is
// supervising this goroutine (a test runner, go run, a process manager)
// instead of silently continuing with a stale model.
func (r *Runtime[M, Msg]) safeUpdate(msg Msg, m M) (M, tea.Cmd[Msg]) {
	defer func() {
		if rec := recover(); rec != nil {
			r.reportErr(fmt.Errorf("platform: update panicked: %v", rec))
			panic(rec)
		}
	}()
	return r.update(msg, m)
}

// spawnCmd drains cmd on its own goroutine, enqueuing every message it emits
// into the main queue. The goroutine is cancelled when the program's scope
// is cancelled. Errors propagate through the program's error channel.
func (r *Runtime[M, Msg]) spawnCmd(cmd tea.Cmd[Msg]) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := cmd.Exec(r.ctx, r.Dispatch); err != nil && r.ctx.Err() == nil {
			r.reportErr(err)
		}
	}()
}

// runSubscriptions reacts to model changes by switching the active
// subscription: it cancels the in-flight Sub and waits for its disposer to
// finish before activating the Sub derived from the new model, so only one
// Sub is ever active and no message from a stale Sub can arrive after
// switching.
func (r *Runtime[M, Msg]) runSubscriptions(subscriptions func(M) tea.Sub[Msg]) {
	defer r.wg.Done()

	modelCh, unsubscribe := r.cell.subscribe()
	defer unsubscribe()

	var cancelActive context.CancelFunc
	var activeDone chan struct{}

	stopActive := func() {
		if cancelActive == nil {
			return
		}
		cancelActive()
		<-activeDone
		cancelActive = nil
		activeDone = nil
	}
	defer stopActive()

	for {
		select {
		case <-r.ctx.Done():
			return
		case m, ok := <-modelCh:
			if !ok {
				return
			}
			stopActive()

			sub := subscriptions(m)
			subCtx, cancel := context.WithCancel(r.ctx)
			done := make(chan struct{})
			cancelActive = cancel
			activeDone = done

			r.wg.Add(1)
			go func() {
				defer r.wg.Done()
				defer close(done)
				if err := sub.Exec(subCtx, r.Dispatch); err != nil && subCtx.Err() == nil {
					r.reportErr(fmt.Errorf("platform: subscription failed: %w", err))
				}
			}()
		}
	}
}

// Run returns the program's model stream; equivalent to rt.Model().
func Run[M comparable, Msg any](rt *Runtime[M, Msg]) <-chan M {
	return rt.Model()
}

// RunWith drains the program's model stream into onModel, calling it once
// per distinct model in write order. The returned channel closes once the
// stream ends (the program terminated).
func RunWith[M comparable, Msg any](rt *Runtime[M, Msg], onModel func(M)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for m := range rt.Model() {
			onModel(m)
		}
	}()
	return done
}
