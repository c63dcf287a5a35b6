package tea

import (
	"context"
	"sync"
)

// Cmd is a lazy, possibly empty, possibly unbounded sequence of Msg values
// produced by a side effect. A Cmd does nothing until the runtime executes
// it by calling run with a context (cancelled at shutdown) and an emit
// callback (safe to call concurrently and from any goroutine).
type Cmd[Msg any] struct {
	run func(ctx context.Context, emit func(Msg)) error
}

// NewCmd builds a Cmd from its run function. Most callers should prefer the
// combinators below (Of, FromEffect, Batch, MapCmd); NewCmd is the escape
// hatch for command libraries that need direct control over emission.
func NewCmd[Msg any](run func(ctx context.Context, emit func(Msg)) error) Cmd[Msg] {
	return Cmd[Msg]{run: run}
}

// Exec executes the command, blocking until it completes. emit is called
// once per message the command produces; it must be safe to call from
// whatever goroutine the command effect runs on. Package platform is the
// only intended caller outside of tests.
func (c Cmd[Msg]) Exec(ctx context.Context, emit func(Msg)) error {
	return c.run(ctx, emit)
}

// None is the Cmd that emits nothing. It is the identity element for Batch.
func None[Msg any]() Cmd[Msg] {
	return Cmd[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		return nil
	}}
}

// Of returns a Cmd that emits msg exactly once, synchronously when executed.
func Of[Msg any](msg Msg) Cmd[Msg] {
	return Cmd[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		emit(msg)
		return nil
	}}
}

// FromEffect runs effect and emits exactly one message: toMsg(result) on
// success, onErr(err) on failure. Errors are always converted to a message
// here rather than surfaced through the runtime's error channel, so that
// Batch and MapCmd stay total; callers that want the distinct success/failure
// handler shape should use package task's Attempt/AttemptWith instead.
func FromEffect[A, Msg any](effect func(context.Context) (A, error), toMsg func(A) Msg, onErr func(error) Msg) Cmd[Msg] {
	return Cmd[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		a, err := effect(ctx)
		if err != nil {
			emit(onErr(err))
			return nil
		}
		emit(toMsg(a))
		return nil
	}}
}

// MapCmd transforms every message a Cmd emits by f, preserving cardinality
// and order. MapCmd(f, MapCmd(g, c)) is observationally equal to
// MapCmd(compose(f, g), c).
func MapCmd[A, B any](f func(A) B, cmd Cmd[A]) Cmd[B] {
	return Cmd[B]{run: func(ctx context.Context, emit func(B)) error {
		return cmd.run(ctx, func(a A) { emit(f(a)) })
	}}
}

// Batch runs every cmd concurrently and merges their emissions into a single
// Cmd. There is no ordering guarantee between messages originating from
// different children; every message any child would emit individually is
// still emitted (batch fairness). Batch() is None; Batch(c) is c.
func Batch[Msg any](cmds ...Cmd[Msg]) Cmd[Msg] {
	switch len(cmds) {
	case 0:
		return None[Msg]()
	case 1:
		return cmds[0]
	}
	return Cmd[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		var wg sync.WaitGroup
		errs := make([]error, len(cmds))
		wg.Add(len(cmds))
		for i, c := range cmds {
			go func(i int, c Cmd[Msg]) {
				defer wg.Done()
				errs[i] = c.run(ctx, emit)
			}(i, c)
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return err
			}
		}
		return nil
	}}
}
