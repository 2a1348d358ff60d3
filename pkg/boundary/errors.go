package boundary

import (
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"strings"
)

// ErrorInfo describes where a failure happened.
type ErrorInfo struct {
	// ComponentStack lists the named subtrees that were rendering,
	// innermost first.
	ComponentStack []string
}

// String formats the stack one frame per line.
func (i ErrorInfo) String() string {
	if len(i.ComponentStack) == 0 {
		return ""
	}
	var b strings.Builder
	for n, name := range i.ComponentStack {
		if n > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("    in ")
		b.WriteString(name)
	}
	return b.String()
}

// RenderFailure is the error a subtree yields when its render fails.
type RenderFailure struct {
	Err   error
	Value any    // recovered value when Panic is set
	Stack []byte // goroutine stack at the panic site
	Info  ErrorInfo
	Panic bool
}

func (f *RenderFailure) Error() string {
	return f.Err.Error()
}

func (f *RenderFailure) Unwrap() error {
	return f.Err
}

// AsRenderFailure returns err as a *RenderFailure, wrapping it if needed.
// It returns nil for a nil error.
func AsRenderFailure(err error) *RenderFailure {
	if err == nil {
		return nil
	}
	var f *RenderFailure
	if errors.As(err, &f) {
		return f
	}
	return &RenderFailure{Err: err}
}

func recovered(v any) *RenderFailure {
	err, ok := v.(error)
	if !ok {
		err = errors.New(fmt.Sprint(v))
	}
	return &RenderFailure{
		Err:   err,
		Value: v,
		Stack: debug.Stack(),
		Panic: true,
	}
}

func (f *RenderFailure) push(name string) {
	f.Info.ComponentStack = append(slices.Clip(f.Info.ComponentStack), name)
}
