//go:build !cosched_nolinkname

package cosched

import (
	"unsafe"
)

var _ unsafe.Pointer

// coro is the Go runtime's coroutine. It's an opaque struct used by the
// runtime functions.
type coro struct{}

//go:linkname newcoro runtime.newcoro
func newcoro(func(*coro)) *coro

//go:linkname coroswitch runtime.coroswitch
func coroswitch(*coro)

// fiber runs its entry on a runtime coroutine. coroswitch transfers
// control directly between the dispatcher's goroutine and the fiber's
// goroutine without a trip through the Go scheduler.
type fiber struct {
	c    *coro
	fin  bool
	perr *panicError
}

func newFiber(label string, entry func(any), arg any) *fiber {
	f := &fiber{}
	f.c = newcoro(func(*coro) {
		// fin must also be set when entry calls runtime.Goexit.
		defer func() { f.fin = true }()
		f.perr = call(label, entry, arg)
	})
	return f
}

func (f *fiber) resume() {
	if f.fin {
		return
	}
	coroswitch(f.c)
}

func (f *fiber) suspend() {
	coroswitch(f.c)
}

func (f *fiber) done() bool {
	return f.fin
}

func (f *fiber) panicked() *panicError {
	return f.perr
}
