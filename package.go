// Package cosched provides a cooperative coroutine runtime for Go. A
// Runtime multiplexes many coroutines, each with its own private stack,
// onto a single flow of control and switches between them only at
// explicit suspension points.
//
// A Runtime is created with New, which registers the calling flow as
// the main coroutine. Coroutines are created with Start, which takes a
// label, an entry function and the single argument passed to it. A
// coroutine gives up the processor by calling Yield, and blocks until
// another coroutine has finished by calling Wait, which also releases
// the finished coroutine's registry slot.
//
//	rt := cosched.New()
//	h, _ := rt.Start("worker", func(arg any) {
//		for i := 0; i < 3; i++ {
//			rt.Yield()
//		}
//	}, nil)
//	_ = rt.Wait(h)
//
// Scheduling is strict round robin over the registry slots, starting
// where the previous scan stopped. Dead coroutines are never selected
// and coroutines blocked in Wait are parked until the coroutine they
// wait on finishes, at which point they are resumed directly. Given the
// same sequence of Start, Yield and Wait calls the interleaving is
// always the same.
//
// There is no preemption: a coroutine that neither yields nor returns
// keeps every other coroutine from running. Wait refuses to close a
// cycle of coroutines waiting on each other (ErrDeadlock). Should the
// scheduler nonetheless find nothing to run, the Runtime panics with an
// error wrapping ErrStarvation and is unusable from then on.
//
// A panic in an entry function is captured together with the stack of
// the coroutine and re-raised on the main coroutine. The coroutine that
// panicked is dead and can still be waited on.
//
// Each coroutine runs on its own goroutine stack. By default control is
// transferred with the Go runtime's coroutine switch, which hands the
// thread directly from one goroutine to the other. Building with the
// cosched_nolinkname tag selects an implementation based on channels
// instead.
package cosched
