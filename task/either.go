package task

// Either represents the result of a fallible computation: Left carries a
// failure, Right carries a success. The shape mirrors the Either algebraic
// effects libraries in this ecosystem use to distinguish "completed with an
// error" from "completed with the zero value" without resorting to a
// sentinel nil.
type Either[L, R any] struct {
	left   L
	right  R
	isLeft bool
}

// Left builds a failed Either.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l, isLeft: true}
}

// Right builds a successful Either.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{right: r}
}

// IsLeft reports whether e holds a Left value.
func (e Either[L, R]) IsLeft() bool { return e.isLeft }

// IsRight reports whether e holds a Right value.
func (e Either[L, R]) IsRight() bool { return !e.isLeft }

// GetLeft returns the Left value and true, or the zero value and false.
func (e Either[L, R]) GetLeft() (L, bool) { return e.left, e.isLeft }

// GetRight returns the Right value and true, or the zero value and false.
func (e Either[L, R]) GetRight() (R, bool) { return e.right, !e.isLeft }

// MatchEither dispatches to onLeft or onRight depending on e's case.
func MatchEither[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.isLeft {
		return onLeft(e.left)
	}
	return onRight(e.right)
}

// MapEither transforms a Right value, passing a Left through unchanged.
func MapEither[L, R, R2 any](f func(R) R2, e Either[L, R]) Either[L, R2] {
	if e.isLeft {
		return Left[L, R2](e.left)
	}
	return Right[L, R2](f(e.right))
}

// MapLeftEither transforms a Left value, passing a Right through unchanged.
func MapLeftEither[L, R, L2 any](f func(L) L2, e Either[L, R]) Either[L2, R] {
	if e.isLeft {
		return Left[L2, R](f(e.left))
	}
	return Right[L2, R](e.right)
}

// FlatMapEither sequences a Right value into another Either, short-circuiting
// on Left.
func FlatMapEither[L, R, R2 any](f func(R) Either[L, R2], e Either[L, R]) Either[L, R2] {
	if e.isLeft {
		return Left[L, R2](e.left)
	}
	return f(e.right)
}
