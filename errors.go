package cosched

import "errors"

var (
	// ErrCapacity is returned by Start when every registry slot is
	// occupied. Slots are only freed by reaping.
	ErrCapacity = errors.New("cosched: registry is full")

	// ErrNotFound is returned when a Handle does not name a live
	// registry entry, either because it was never issued by this
	// Runtime or because the coroutine has already been reaped.
	ErrNotFound = errors.New("cosched: coroutine not found")

	// ErrNilEntry is returned by Start when no entry function is given.
	// Only the bootstrap coroutine runs without an entry.
	ErrNilEntry = errors.New("cosched: nil entry function")

	// ErrWaitSelf is returned when a coroutine waits on itself.
	ErrWaitSelf = errors.New("cosched: coroutine cannot wait on itself")

	// ErrMainCoroutine is returned when Wait or Detach targets the
	// bootstrap coroutine, which never completes.
	ErrMainCoroutine = errors.New("cosched: not permitted on the main coroutine")

	// ErrAlreadyWaited is returned when the target already has a waiter.
	ErrAlreadyWaited = errors.New("cosched: coroutine already has a waiter")

	// ErrDeadlock is returned when waiting on the target would close a
	// cycle of coroutines waiting on each other.
	ErrDeadlock = errors.New("cosched: wait would deadlock")

	// ErrDetached is returned when waiting on or detaching a coroutine
	// that has been detached.
	ErrDetached = errors.New("cosched: coroutine is detached")

	// ErrStarvation is the panic value (wrapped) raised when the
	// scheduler finds no coroutine it can run. It is not recoverable:
	// the Runtime is unusable afterwards and every further call panics
	// with the same error.
	ErrStarvation = errors.New("cosched: no runnable coroutine")
)
