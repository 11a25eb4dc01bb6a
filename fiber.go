package cosched

// A fiber is the execution context of a coroutine: a private stack plus
// the point at which execution continues. Two implementations exist,
// selected by the cosched_nolinkname build tag; both provide
//
//	newFiber(label, entry, arg) *fiber
//	    provisions the context; entry does not run yet.
//	(*fiber).resume()
//	    called by the dispatcher. The first call launches entry(arg) on
//	    the fiber's stack, later calls continue at the point of the last
//	    suspend. Returns when the fiber suspends or entry returns.
//	(*fiber).suspend()
//	    called on the fiber's own stack. Hands control back to the
//	    resumer and returns only when the fiber is resumed again.
//	(*fiber).done() bool
//	    reports whether entry has returned.
//	(*fiber).panicked() *panicError
//	    the panic that ended entry, if any.
//
// Nothing else in the package switches stacks.

// call runs entry on the current stack and converts a panic escaping it
// into a panicError.
func call(label string, entry func(any), arg any) (perr *panicError) {
	defer func() {
		if p := recover(); p != nil {
			perr = newPanicError(label, p)
		}
	}()
	entry(arg)
	return nil
}
