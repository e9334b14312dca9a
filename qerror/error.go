package qerror

import "fmt"

// Error is the error type used across the simulation core. It carries a
// pre-formatted message and nothing else; the core never wraps or inspects
// errors, it either recovers locally or aborts.
type Error struct {
	Err string
}

func New(format string, args ...interface{}) *Error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
