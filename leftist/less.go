package leftist

import "golang.org/x/exp/constraints"

// Less reports whether a is strictly less than b. It must describe a strict
// weak ordering. An error, or a panic, aborts the operation in progress and
// leaves the heap untouched.
type Less[T any] func(a, b T) (bool, error)

// Func adapts an infallible comparison function.
func Func[T any](less func(a, b T) bool) Less[T] {
	return func(a, b T) (bool, error) {
		return less(a, b), nil
	}
}

// Ordered orders values with the < operator, so the heap pops the largest
// value first. NaN is not ordered and must not be pushed into a float heap.
func Ordered[T constraints.Ordered]() Less[T] {
	return func(a, b T) (bool, error) {
		return a < b, nil
	}
}

// Reverse inverts less, turning a max-heap into a min-heap.
func Reverse[T any](less Less[T]) Less[T] {
	return func(a, b T) (bool, error) {
		return less(b, a)
	}
}
