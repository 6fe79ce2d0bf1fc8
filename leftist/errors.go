package leftist

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned by Top and Pop on a heap with no elements.
	ErrEmpty = errors.New("leftist: container is empty")
	// ErrComparator wraps every failure reported by the comparator, whether it
	// returned an error or panicked.
	ErrComparator = errors.New("leftist: comparator failed")
)

// PanicError carries the value recovered from a panicking comparator.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("comparator panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func comparatorError(cause error) error {
	return fmt.Errorf("%w: %w", ErrComparator, cause)
}
