package evreg

import (
	"fmt"
)

// FailurePolicy decides what Emit does once a callback fails.
type FailurePolicy int

const (
	// ContinueOnError logs each failure, runs the remaining callbacks and
	// returns every failure joined together.
	ContinueOnError FailurePolicy = iota
	// StopOnError returns the first failure and skips the remaining callbacks.
	StopOnError
)

func (p FailurePolicy) String() string {
	switch p {
	case ContinueOnError:
		return "continue"
	case StopOnError:
		return "stop"
	}
	return fmt.Sprintf("FailurePolicy(%d)", int(p))
}

// CallbackError reports a failed callback during an emission. Index is the
// callback's position in the registration set.
type CallbackError struct {
	Event    any
	Callback string
	Index    int
	Err      error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("evreg: event %v: callback %s (#%d): %v", e.Event, e.Callback, e.Index, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

// PanicError carries the value a callback panicked with.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
