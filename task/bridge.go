package task

import (
	"context"

	"github.com/LISSConsulting/reactea"
)

// Perform bridges an infallible effect into a Cmd that emits toMsg(result)
// exactly once.
func Perform[A, Msg any](toMsg func(A) Msg, effect func(context.Context) A) tea.Cmd[Msg] {
	return tea.NewCmd(func(ctx context.Context, emit func(Msg)) error {
		emit(toMsg(effect(ctx)))
		return nil
	})
}

// Attempt bridges a fallible effect into a Cmd that emits
// toMsg(Right(result)) on success or toMsg(Left(err)) on failure.
func Attempt[A, Msg any](toMsg func(Either[error, A]) Msg, t Task[A]) tea.Cmd[Msg] {
	return tea.NewCmd(func(ctx context.Context, emit func(Msg)) error {
		a, err := t(ctx)
		if err != nil {
			emit(toMsg(Left[error, A](err)))
			return nil
		}
		emit(toMsg(Right[error, A](a)))
		return nil
	})
}

// AttemptWith bridges a fallible effect into a Cmd that emits onSuccess(a) or
// onFailure(err), the dual-handler form of Attempt. This is the shape the
// runtime's error-handling policy expects: convert to a message at the
// boundary, then let update decide how to react — an unhandled command
// error is the exception, not the common case.
func AttemptWith[A, Msg any](onSuccess func(A) Msg, onFailure func(error) Msg, t Task[A]) tea.Cmd[Msg] {
	return tea.NewCmd(func(ctx context.Context, emit func(Msg)) error {
		a, err := t(ctx)
		if err != nil {
			emit(onFailure(err))
			return nil
		}
		emit(onSuccess(a))
		return nil
	})
}
