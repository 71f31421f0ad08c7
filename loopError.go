package pace

import (
	"fmt"
	"runtime/debug"
)

// TokenSource identifies which part of the loop produced an error.
type TokenSource int

const (
	// TokenLoop is the loop machinery itself.
	TokenLoop TokenSource = iota
	// TokenUpdate is the caller-supplied update function.
	TokenUpdate
	// TokenPacer is the frame throttle.
	TokenPacer
)

// LoopError is thrown when a pace function returns an error.
type LoopError struct {
	Inner       error
	Message     string
	StackTrace  string
	ErrorSource TokenSource
	Misc        map[string]interface{}
}

func wrapLoopError(err error, source TokenSource, messagef string, msgArgs ...interface{}) LoopError {
	return LoopError{
		Inner:       err,
		Message:     fmt.Sprintf(messagef, msgArgs...),
		StackTrace:  string(debug.Stack()),
		ErrorSource: source,
		Misc:        make(map[string]interface{}),
	}
}

func (e LoopError) Error() string {
	return e.Message
}

func (e LoopError) Unwrap() error {
	return e.Inner
}
