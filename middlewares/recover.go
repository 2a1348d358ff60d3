package middlewares

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/autoresum/autoresum-web/internal"
)

const defaultStackSize = 4096

// PanicError is a panic recovered from a handler.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// AsPanicError extracts a PanicError from err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Recover converts a handler panic into a *PanicError for the app's error
// handler. Panics inside a page wrapped by a render boundary never get here.
func Recover() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := make([]byte, defaultStackSize)
					stack = stack[:runtime.Stack(stack, false)]
					c.LogError("panic recovered", "panic", r, "stack", string(stack))
					err = &PanicError{Value: r, Stack: stack}
				}
			}()
			return next(c)
		}
	}
}
