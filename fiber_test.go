package cosched

import (
	"errors"
	"testing"
)

func TestFiberDoesNotRunBeforeResume(t *testing.T) {
	ran := false
	f := newFiber("idle", func(any) { ran = true }, nil)

	if ran {
		t.Error("Expected entry not to run before resume")
	}
	if f.done() {
		t.Error("Expected fiber not to be done")
	}

	f.resume()
	if !ran {
		t.Error("Expected entry to run on first resume")
	}
	if !f.done() {
		t.Error("Expected fiber to be done")
	}
}

func TestFiberPassesArgument(t *testing.T) {
	var got any
	f := newFiber("arg", func(arg any) { got = arg }, "payload")
	f.resume()

	if got != "payload" {
		t.Errorf("Expected argument 'payload', got '%v'", got)
	}
}

func TestFiberSuspendResume(t *testing.T) {
	var (
		f     *fiber
		trace []string
	)

	f = newFiber("steps", func(any) {
		trace = append(trace, "first")
		f.suspend()
		trace = append(trace, "second")
		f.suspend()
		trace = append(trace, "third")
	}, nil)

	f.resume()
	if len(trace) != 1 || f.done() {
		t.Fatalf("Expected one step and a live fiber, got %v done=%v", trace, f.done())
	}

	trace = append(trace, "outside")

	f.resume()
	if len(trace) != 3 || f.done() {
		t.Fatalf("Expected three entries and a live fiber, got %v done=%v", trace, f.done())
	}

	f.resume()
	if !f.done() {
		t.Error("Expected fiber to be done")
	}

	want := []string{"first", "outside", "second", "third"}
	for i, s := range want {
		if trace[i] != s {
			t.Errorf("Expected trace[%d] to be '%s', got '%s'", i, s, trace[i])
		}
	}
}

func TestFiberKeepsLocals(t *testing.T) {
	var (
		f        *fiber
		observed int
	)

	f = newFiber("locals", func(any) {
		n := 0
		for i := 0; i < 3; i++ {
			n++
			f.suspend()
		}
		observed = n
	}, nil)

	for !f.done() {
		f.resume()
	}

	if observed != 3 {
		t.Errorf("Expected local counter to be 3, got %d", observed)
	}
}

func TestFiberResumeAfterCompletion(t *testing.T) {
	calls := 0
	f := newFiber("once", func(any) { calls++ }, nil)

	f.resume()
	f.resume()
	f.resume()

	if calls != 1 {
		t.Errorf("Expected entry to run once, got %d", calls)
	}
}

func TestFiberPanicRecovery(t *testing.T) {
	var f *fiber
	f = newFiber("boom", func(any) {
		f.suspend()
		panic(errors.New("test panic"))
	}, nil)

	f.resume()
	if f.panicked() != nil {
		t.Error("Expected no panic before the second resume")
	}

	f.resume()
	if !f.done() {
		t.Error("Expected fiber to be done after panic")
	}

	perr := f.panicked()
	if perr == nil {
		t.Fatal("Expected panic to be recorded")
	}
	if perr.Error() != "test panic" {
		t.Errorf("Expected panic message 'test panic', got '%s'", perr.Error())
	}
	if perr.Label() != "boom" {
		t.Errorf("Expected label 'boom', got '%s'", perr.Label())
	}
}

func TestFiberNested(t *testing.T) {
	var (
		outer, inner *fiber
		trace        []string
	)

	inner = newFiber("inner", func(any) {
		trace = append(trace, "inner:1")
		inner.suspend()
		trace = append(trace, "inner:2")
	}, nil)

	outer = newFiber("outer", func(any) {
		trace = append(trace, "outer:1")
		inner.resume()
		outer.suspend()
		inner.resume()
		trace = append(trace, "outer:2")
	}, nil)

	outer.resume()
	outer.resume()

	if !outer.done() || !inner.done() {
		t.Fatalf("Expected both fibers done, got outer=%v inner=%v", outer.done(), inner.done())
	}

	want := []string{"outer:1", "inner:1", "inner:2", "outer:2"}
	if len(trace) != len(want) {
		t.Fatalf("Expected trace %v, got %v", want, trace)
	}
	for i, s := range want {
		if trace[i] != s {
			t.Errorf("Expected trace[%d] to be '%s', got '%s'", i, s, trace[i])
		}
	}
}
