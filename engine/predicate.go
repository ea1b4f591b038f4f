package engine

import (
	"golang.org/x/exp/constraints"
)

// Predicate is a user supplied test over a single element.
type Predicate[T any] func(T) bool

func GreaterThan[T constraints.Ordered](threshold T) Predicate[T] {
	return func(v T) bool { return v > threshold }
}

func LessThan[T constraints.Ordered](threshold T) Predicate[T] {
	return func(v T) bool { return v < threshold }
}

func EqualTo[T comparable](want T) Predicate[T] {
	return func(v T) bool { return v == want }
}

func IsOdd[T constraints.Integer]() Predicate[T] {
	return func(v T) bool { return v%2 != 0 }
}

func IsEven[T constraints.Integer]() Predicate[T] {
	return func(v T) bool { return v%2 == 0 }
}

func Not[T any](p Predicate[T]) Predicate[T] {
	return func(v T) bool { return !p(v) }
}

// And is satisfied when every predicate is; an empty And always is.
func And[T any](ps ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range ps {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Or is satisfied when any predicate is; an empty Or never is.
func Or[T any](ps ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range ps {
			if p(v) {
				return true
			}
		}
		return false
	}
}
