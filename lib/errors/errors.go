package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// traced annotates an error with the location at which it was traced.
type traced struct {
	err  error
	file string
	line int
}

// Error implements error.
func (t *traced) Error() string {
	return t.err.Error()
}

// Trace annotates an error with the file and line it was traced at,
// returning nil if the error is nil so that returns can be wrapped directly.
func Trace(
	err error,
) error {
	if err == nil {
		return nil
	}
	_, file, line, _ := runtime.Caller(1)
	if idx := strings.LastIndex(file, "/"); idx >= 0 {
		file = file[idx+1:]
	}
	return &traced{err, file, line}
}

// Newf creates a new error from a format string.
func Newf(
	format string,
	args ...interface{},
) error {
	return fmt.Errorf(format, args...)
}

// Cause returns the underlying cause of an error, unwrapping the trace and
// user error annotations added along the way.
func Cause(
	err error,
) error {
	for err != nil {
		switch e := err.(type) {
		case *traced:
			err = e.err
		case *userError:
			if e.err == nil {
				return e
			}
			err = e.err
		default:
			return err
		}
	}
	return err
}

// ErrorStack returns the annotated locations and messages of an error,
// outermost first.
func ErrorStack(
	err error,
) []string {
	stack := []string{}
	for err != nil {
		switch e := err.(type) {
		case *traced:
			stack = append(stack,
				fmt.Sprintf("%s:%d: %s", e.file, e.line, e.err.Error()))
			err = e.err
		case *userError:
			stack = append(stack, e.Error())
			err = e.err
		default:
			stack = append(stack, err.Error())
			err = nil
		}
	}
	return stack
}

// Details returns a human-readable description of the error along with its
// trace.
func Details(
	err error,
) string {
	return strings.Join(ErrorStack(err), "\n  ")
}
