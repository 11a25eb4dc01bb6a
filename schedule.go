package cosched

import (
	"fmt"
	"log/slog"
)

// dispatch is the scheduling loop. It runs on the main coroutine's
// stack: every other coroutine is resumed from here and suspends back
// here, so each pass of the loop is one scheduling decision. It returns
// when the main coroutine is selected.
func (rt *Runtime) dispatch() {
	for {
		next := rt.handoff
		if next != nil {
			rt.handoff = nil
			rt.metrics.handoffs.Inc(1)
		} else {
			next = rt.pick()
		}
		rt.metrics.switches.Inc(1)

		if next == rt.main {
			rt.current = rt.main
			rt.logger.Debug("cosched: switch", rt.logAttrs(next)...)
			return
		}
		rt.run(next)
	}
}

// pick selects the next runnable coroutine in round-robin order.
func (rt *Runtime) pick() *coroutine {
	next, ok := rt.reg.next()
	if !ok {
		rt.starve()
	}
	return next
}

// starve poisons the Runtime. With no runnable coroutine left there is
// no flow to return to, so the condition is raised as a panic on the
// main coroutine.
func (rt *Runtime) starve() {
	waiting := 0
	rt.reg.each(func(co *coroutine) {
		if co.status == StatusWaiting {
			waiting++
		}
	})
	rt.poison = fmt.Errorf("%w: %d registered, %d waiting", ErrStarvation, rt.reg.count, waiting)
	rt.current = rt.main
	rt.logger.Error("cosched: scheduling starvation",
		slog.Int("registered", rt.reg.count),
		slog.Int("waiting", waiting))
	panic(rt.poison)
}

// run gives the processor to co until it suspends or its entry
// function returns. A new coroutine is launched on a fresh fiber.
func (rt *Runtime) run(co *coroutine) {
	rt.current = co
	if co.status == StatusNew {
		co.status = StatusRunning
		co.fiber = newFiber(co.label, co.entry, co.arg)
		rt.metrics.launches.Inc(1)
		rt.logger.Debug("cosched: launch", rt.logAttrs(co)...)
	} else {
		rt.logger.Debug("cosched: switch", rt.logAttrs(co)...)
	}

	co.fiber.resume()
	rt.current = rt.main

	if co.fiber.done() {
		rt.retire(co)
	}
}

// retire marks co dead after its entry function returned. A waiter
// parked on co is made runnable and dispatched next. A panic that ended
// the entry function is re-raised here, on the main coroutine.
func (rt *Runtime) retire(co *coroutine) {
	perr := co.fiber.panicked()
	co.status = StatusDead
	co.fiber = nil
	rt.metrics.retired.Inc(1)
	rt.logger.Debug("cosched: retired", rt.logAttrs(co)...)

	if w := co.waiter; w != nil && w.status == StatusWaiting {
		w.status = StatusRunning
		rt.handoff = w
	}
	if co.detached {
		rt.reap(co)
	}

	if perr != nil {
		rt.metrics.panics.Inc(1)
		rt.logger.Error("cosched: coroutine panicked",
			append(rt.logAttrs(co), slog.String("panic", perr.Error()))...)
		// The panic unwinds the main coroutine's current call. A woken
		// waiter other than main stays runnable and is picked up by a
		// later scan.
		rt.handoff = nil
		if co.waiter == rt.main {
			co.waiter = nil
		}
		panic(perr)
	}
}

// reap removes a dead coroutine from the registry and drops its
// references.
func (rt *Runtime) reap(co *coroutine) {
	if err := rt.reg.unregister(co.handle); err != nil {
		return
	}
	co.waiter = nil
	co.entry = nil
	co.arg = nil
	rt.metrics.reaped.Inc(1)
	rt.metrics.live.Update(float64(rt.reg.count))
	rt.logger.Debug("cosched: reaped", rt.logAttrs(co)...)
}
