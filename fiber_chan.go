//go:build cosched_nolinkname

package cosched

// fiber runs its entry on a plain goroutine. Exactly one side of the
// unbuffered baton channel runs at a time: the resumer blocks receiving
// while the fiber runs and the fiber blocks receiving while suspended.
type fiber struct {
	label   string
	entry   func(any)
	arg     any
	baton   chan struct{}
	started bool
	fin     bool
	perr    *panicError
}

func newFiber(label string, entry func(any), arg any) *fiber {
	return &fiber{
		label: label,
		entry: entry,
		arg:   arg,
		baton: make(chan struct{}),
	}
}

func (f *fiber) run() {
	defer func() {
		f.fin = true
		f.baton <- struct{}{}
	}()
	f.perr = call(f.label, f.entry, f.arg)
}

func (f *fiber) resume() {
	if f.fin {
		return
	}
	if !f.started {
		f.started = true
		go f.run()
	} else {
		f.baton <- struct{}{}
	}
	<-f.baton
}

func (f *fiber) suspend() {
	f.baton <- struct{}{}
	<-f.baton
}

func (f *fiber) done() bool {
	return f.fin
}

func (f *fiber) panicked() *panicError {
	return f.perr
}
