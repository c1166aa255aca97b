// Package state provides diff-suppressed reactive values: each value
// holds its last published state and an equality predicate, and only
// notifies subscribers when a new value differs enough.
package state

import "math"

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// EqualWithin treats floats within epsilon of each other as equal.
// Non-finite values are only equal to themselves.
func EqualWithin(epsilon float64) EqualFunc[float64] {
	return func(a, b float64) bool {
		if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
			return a == b || (math.IsNaN(a) && math.IsNaN(b))
		}
		return math.Abs(a-b) < epsilon
	}
}

// Subscribable emits change notifications.
type Subscribable interface {
	Subscribe(fn func()) func()
}

// Readable exposes read-only reactive state.
type Readable[T any] interface {
	Get() T
	Subscribe(fn func()) func()
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

// Writable exposes read/write reactive state.
type Writable[T any] interface {
	Readable[T]
	Set(value T) bool
	Update(fn func(T) T) bool
}
