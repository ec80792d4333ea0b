package errors

import (
	"fmt"
	"runtime"
)

// Error pairs an error with the stack captured where it was constructed.
type Error struct {
	Err   error
	Stack []byte
}

func Errorf(format string, args ...interface{}) error {
	return &Error{
		Err:   fmt.Errorf(format, args...),
		Stack: stack(),
	}
}

// Wrapf attaches context to err. The %w verb is applied to err so that
// stdlib errors.Is and errors.As see through both the Error and the
// formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	args = append(args, err)
	return &Error{
		Err:   fmt.Errorf(format+": %w", args...),
		Stack: stack(),
	}
}

func stack() []byte {
	buf := make([]byte, 50000)
	n := runtime.Stack(buf, false)
	trace := make([]byte, n)
	copy(trace, buf)
	return trace
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s\n%s", e.Err, string(e.Stack))
}

func (e *Error) String() string {
	return e.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
