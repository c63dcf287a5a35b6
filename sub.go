package tea

import (
	"context"
	"sync"
	"time"
)

// Sub is structurally identical to Cmd but semantically an ongoing external
// source: timers, input events, cross-process notifications. A Sub may be
// activated and cancelled many times over a program's life; cancelling the
// context passed to run MUST release every resource the Sub registered
// before run returns.
type Sub[Msg any] struct {
	run func(ctx context.Context, emit func(Msg)) error
}

// NewSub builds a Sub from its run function, the Sub counterpart to NewCmd.
func NewSub[Msg any](run func(ctx context.Context, emit func(Msg)) error) Sub[Msg] {
	return Sub[Msg]{run: run}
}

// Exec executes the subscription until ctx is cancelled or it fails.
// Package platform is the only intended caller outside of tests.
func (s Sub[Msg]) Exec(ctx context.Context, emit func(Msg)) error {
	return s.run(ctx, emit)
}

// NoneSub is the Sub that never emits and returns only when cancelled.
func NoneSub[Msg any]() Sub[Msg] {
	return Sub[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		<-ctx.Done()
		return nil
	}}
}

// OfSub emits msg once, synchronously, then idles until cancelled.
func OfSub[Msg any](msg Msg) Sub[Msg] {
	return Sub[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		emit(msg)
		<-ctx.Done()
		return nil
	}}
}

// FromIterable emits every value of xs in order, then idles until cancelled.
func FromIterable[Msg any](xs []Msg) Sub[Msg] {
	return Sub[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		for _, x := range xs {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			emit(x)
		}
		<-ctx.Done()
		return nil
	}}
}

// MapSub transforms every message a Sub emits by f, preserving order.
func MapSub[A, B any](f func(A) B, sub Sub[A]) Sub[B] {
	return Sub[B]{run: func(ctx context.Context, emit func(B)) error {
		return sub.run(ctx, func(a A) { emit(f(a)) })
	}}
}

// Filter drops messages pred rejects before they reach the runtime queue.
func Filter[Msg any](pred func(Msg) bool, sub Sub[Msg]) Sub[Msg] {
	return Sub[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		return sub.run(ctx, func(m Msg) {
			if pred(m) {
				emit(m)
			}
		})
	}}
}

// BatchSub runs every sub concurrently for as long as the combined Sub is
// active; cancelling the combined Sub cancels every child. There is no
// ordering guarantee between messages originating from different children.
// A child that fails cancels its siblings, and the combined Sub returns that
// error. BatchSub() is NoneSub; BatchSub(s) is s.
func BatchSub[Msg any](subs ...Sub[Msg]) Sub[Msg] {
	switch len(subs) {
	case 0:
		return NoneSub[Msg]()
	case 1:
		return subs[0]
	}
	return Sub[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		var wg sync.WaitGroup
		errs := make([]error, len(subs))
		wg.Add(len(subs))
		for i, s := range subs {
			go func(i int, s Sub[Msg]) {
				defer wg.Done()
				if errs[i] = s.run(ctx, emit); errs[i] != nil {
					cancel()
				}
			}(i, s)
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

// Interval emits msg every period until cancelled. The first tick fires
// after one period has elapsed, not immediately on activation.
func Interval[Msg any](period time.Duration, msg Msg) Sub[Msg] {
	return Sub[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				emit(msg)
			}
		}
	}}
}

// FromCallback activates an external source by calling register with an
// emit function; register must return a disposer. The disposer runs exactly
// once, when the Sub is cancelled.
func FromCallback[Msg any](register func(emit func(Msg)) func()) Sub[Msg] {
	return Sub[Msg]{run: func(ctx context.Context, emit func(Msg)) error {
		dispose := register(emit)
		<-ctx.Done()
		if dispose != nil {
			dispose()
		}
		return nil
	}}
}
