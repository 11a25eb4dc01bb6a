package cosched

import (
	"fmt"
	"log/slog"
)

// Start registers a new coroutine that will run entry(arg) on its own
// stack, then yields so the scheduler can run something else. The new
// coroutine is schedulable once Start has registered it, but it need
// not have run by the time Start returns.
//
// Start fails with ErrNilEntry if entry is nil and with ErrCapacity if
// the registry is full; in both cases the caller does not yield.
func (rt *Runtime) Start(label string, entry func(arg any), arg any) (Handle, error) {
	rt.checkPoison()
	if entry == nil {
		return Handle{}, fmt.Errorf("start %q: %w", label, ErrNilEntry)
	}

	co := &coroutine{
		label:  label,
		entry:  entry,
		arg:    arg,
		status: StatusNew,
	}
	h, err := rt.reg.register(co)
	if err != nil {
		rt.logger.Debug("cosched: start rejected",
			slog.String("coroutine", label),
			slog.Int("registered", rt.reg.count))
		return Handle{}, fmt.Errorf("start %q: %w", label, err)
	}
	co.handle = h
	rt.metrics.started.Inc(1)
	rt.metrics.live.Update(float64(rt.reg.count))
	rt.logger.Debug("cosched: started",
		append(rt.logAttrs(co), slog.String("by", rt.current.label))...)

	rt.Yield()
	return h, nil
}

// Yield suspends the calling coroutine and lets the scheduler run the
// next runnable coroutine in round-robin order, which may be the caller
// itself. It returns when the caller is scheduled again.
//
// Yield panics with an error wrapping ErrStarvation if no coroutine is
// runnable. Wait refuses to form wait cycles, so this indicates broken
// scheduler bookkeeping rather than a usage error.
func (rt *Runtime) Yield() {
	rt.checkPoison()
	self := rt.current
	if self == rt.main {
		rt.dispatch()
		return
	}
	self.fiber.suspend()
}

// Wait blocks the calling coroutine until the coroutine named by h has
// returned from its entry function, then reaps it: its slot is freed
// and h no longer names anything. Other coroutines keep running while
// the caller waits. Waiting on a coroutine that is already dead reaps
// it without yielding.
//
// A coroutine has at most one waiter. Wait fails without blocking if h
// is unknown or stale, names the caller or the main coroutine, has been
// detached, already has a waiter, or is itself waiting (directly or
// through others) on the caller.
func (rt *Runtime) Wait(h Handle) error {
	rt.checkPoison()
	target, err := rt.reg.lookup(h)
	if err != nil {
		return fmt.Errorf("wait %s: %w", h, err)
	}
	self := rt.current
	switch {
	case target == self:
		return fmt.Errorf("wait %q: %w", target.label, ErrWaitSelf)
	case target == rt.main:
		return fmt.Errorf("wait %q: %w", target.label, ErrMainCoroutine)
	case target.detached:
		return fmt.Errorf("wait %q: %w", target.label, ErrDetached)
	case rt.closesCycle(self, target):
		return fmt.Errorf("wait %q: %w", target.label, ErrDeadlock)
	case target.waiter != nil && target.waiter != self:
		return fmt.Errorf("wait %q: %w", target.label, ErrAlreadyWaited)
	}

	if target.status != StatusDead {
		rt.logger.Debug("cosched: waiting",
			append(rt.logAttrs(self), slog.String("target", target.label))...)
		rt.park(self, target)
	}
	rt.reap(target)
	return nil
}

// park suspends self until target is dead. The scheduler skips self
// while it is waiting and dispatches it directly once target retires.
func (rt *Runtime) park(self, target *coroutine) {
	self.status = StatusWaiting
	self.waitingOn = target
	target.waiter = self
	defer func() {
		self.waitingOn = nil
		// Only reached in the waiting state when a panic unwinds the
		// main coroutine out of its wait.
		if self.status == StatusWaiting {
			self.status = StatusRunning
			target.waiter = nil
		}
	}()
	for target.status != StatusDead {
		rt.Yield()
	}
}

func (rt *Runtime) closesCycle(self, target *coroutine) bool {
	for co := target.waitingOn; co != nil; co = co.waitingOn {
		if co == self {
			return true
		}
	}
	return false
}

// Detach marks the coroutine named by h as never to be waited on. It is
// reaped by the scheduling pass that retires it, or immediately if it
// is already dead. Without Wait or Detach a finished coroutine keeps
// its registry slot.
func (rt *Runtime) Detach(h Handle) error {
	rt.checkPoison()
	co, err := rt.reg.lookup(h)
	if err != nil {
		return fmt.Errorf("detach %s: %w", h, err)
	}
	switch {
	case co == rt.main:
		return fmt.Errorf("detach %q: %w", co.label, ErrMainCoroutine)
	case co.detached:
		return fmt.Errorf("detach %q: %w", co.label, ErrDetached)
	case co.waiter != nil:
		return fmt.Errorf("detach %q: %w", co.label, ErrAlreadyWaited)
	}

	co.detached = true
	if co.status == StatusDead {
		rt.reap(co)
	}
	return nil
}
