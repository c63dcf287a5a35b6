// Package task bridges an effectful computation that may succeed or fail
// into the single-message Cmd the platform runtime expects, and composes
// such computations before they are bridged.
package task

import (
	"context"
	"sync"
)

// Task is an effectful computation that produces an A or fails with an
// error. Construction is pure; nothing runs until the task is called.
type Task[A any] func(context.Context) (A, error)

// Pair tuples two independently-produced values, used by TaskBoth.
type Pair[A, B any] struct {
	First  A
	Second B
}

// TaskMap transforms a successful result by f, leaving a failure untouched.
func TaskMap[A, B any](f func(A) B, t Task[A]) Task[B] {
	return func(ctx context.Context) (B, error) {
		a, err := t(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// TaskMapError transforms a failure by f, leaving a success untouched.
func TaskMapError[A any](f func(error) error, t Task[A]) Task[A] {
	return func(ctx context.Context) (A, error) {
		a, err := t(ctx)
		if err != nil {
			return a, f(err)
		}
		return a, nil
	}
}

// TaskFlatMap sequences t into another task chosen from its result.
func TaskFlatMap[A, B any](f func(A) Task[B], t Task[A]) Task[B] {
	return func(ctx context.Context) (B, error) {
		a, err := t(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a)(ctx)
	}
}

// TaskBoth runs ta and tb concurrently and waits for both, failing with
// whichever error arrives (preferring ta's) if either fails.
func TaskBoth[A, B any](ta Task[A], tb Task[B]) Task[Pair[A, B]] {
	return func(ctx context.Context) (Pair[A, B], error) {
		type resA struct {
			v   A
			err error
		}
		type resB struct {
			v   B
			err error
		}
		chA := make(chan resA, 1)
		chB := make(chan resB, 1)
		go func() {
			v, err := ta(ctx)
			chA <- resA{v, err}
		}()
		go func() {
			v, err := tb(ctx)
			chB <- resB{v, err}
		}()
		ra, rb := <-chA, <-chB
		if ra.err != nil {
			return Pair[A, B]{}, ra.err
		}
		if rb.err != nil {
			return Pair[A, B]{}, rb.err
		}
		return Pair[A, B]{First: ra.v, Second: rb.v}, nil
	}
}

// TaskAll runs every task concurrently and collects their results in input
// order, failing with the first error encountered (by input position, not
// by completion time).
func TaskAll[A any](ts ...Task[A]) Task[[]A] {
	return func(ctx context.Context) ([]A, error) {
		results := make([]A, len(ts))
		errs := make([]error, len(ts))
		var wg sync.WaitGroup
		wg.Add(len(ts))
		for i, t := range ts {
			go func(i int, t Task[A]) {
				defer wg.Done()
				results[i], errs[i] = t(ctx)
			}(i, t)
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		return results, nil
	}
}
