package cosched

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

// panicError carries a value recovered from a coroutine's entry
// function to the flow that re-raises it, together with the stack of
// the coroutine at the time of the panic.
type panicError struct {
	label string
	value any
	stack []byte
}

func (p *panicError) Error() string {
	return fmt.Sprintf("%v", p.value)
}

// Label returns the label of the coroutine that panicked.
func (p *panicError) Label() string {
	return p.label
}

func (p *panicError) ErrorWithStack() string {
	return fmt.Sprintf("coroutine %q: %v\n\n%s", p.label, p.value, p.stack)
}

func (p *panicError) Unwrap() error {
	err, ok := p.value.(error)
	if !ok {
		return nil
	}
	return err
}

// DebugString renders the whole chain of wrapped errors, expanding the
// stack of every panicError found along the way. Nested runtimes can
// produce a panicError wrapping another one.
func (p *panicError) DebugString() string {
	var sb strings.Builder
	seen := make(map[error]bool)

	var unwrap func(error)
	unwrap = func(e error) {
		if e == nil || seen[e] {
			return
		}
		seen[e] = true

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		if p, ok := e.(*panicError); ok {
			sb.WriteString(p.ErrorWithStack())
		} else {
			sb.WriteString(e.Error())
		}

		if unwrapper, ok := e.(interface{ Unwrap() []error }); ok {
			for _, ue := range unwrapper.Unwrap() {
				unwrap(ue)
			}
		} else if ue := errors.Unwrap(e); ue != nil {
			unwrap(ue)
		}
	}

	unwrap(p)
	return sb.String()
}

func newPanicError(label string, v any) *panicError {
	return &panicError{
		label: label,
		value: v,
		stack: debug.Stack(),
	}
}
