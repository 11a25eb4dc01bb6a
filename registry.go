package cosched

import "fmt"

// Handle names a coroutine registered with a Runtime. It pairs the
// registry slot with the generation the slot had when the coroutine was
// registered, so a Handle kept after its coroutine was reaped never
// refers to whatever occupies the slot next. The zero Handle names no
// coroutine.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "coroutine(none)"
	}
	return fmt.Sprintf("coroutine(%d.%d)", h.index, h.gen)
}

type slot struct {
	co  *coroutine
	gen uint32
}

// registry is a fixed-capacity arena of coroutine records plus the
// round-robin cursor of the scheduler. Both operations scan the slots
// in index order.
type registry struct {
	slots  []slot
	count  int
	cursor int
}

func newRegistry(capacity int) *registry {
	r := &registry{slots: make([]slot, capacity)}
	for i := range r.slots {
		r.slots[i].gen = 1
	}
	return r
}

// register stores co in the first free slot.
func (r *registry) register(co *coroutine) (Handle, error) {
	for i := range r.slots {
		s := &r.slots[i]
		if s.co == nil {
			s.co = co
			r.count++
			return Handle{index: uint32(i), gen: s.gen}, nil
		}
	}
	return Handle{}, ErrCapacity
}

// unregister vacates the slot named by h and retires its generation.
func (r *registry) unregister(h Handle) error {
	s, err := r.slot(h)
	if err != nil {
		return err
	}
	s.co = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	r.count--
	return nil
}

func (r *registry) lookup(h Handle) (*coroutine, error) {
	s, err := r.slot(h)
	if err != nil {
		return nil, err
	}
	return s.co, nil
}

func (r *registry) slot(h Handle) (*slot, error) {
	if h.IsZero() || int(h.index) >= len(r.slots) {
		return nil, ErrNotFound
	}
	s := &r.slots[h.index]
	if s.co == nil || s.gen != h.gen {
		return nil, ErrNotFound
	}
	return s, nil
}

// next returns the first runnable coroutine at or after the cursor,
// wrapping around the whole registry once, and moves the cursor one
// past it. It returns false when nothing is runnable.
func (r *registry) next() (*coroutine, bool) {
	n := len(r.slots)
	for i := 0; i < n; i++ {
		idx := (r.cursor + i) % n
		co := r.slots[idx].co
		if co != nil && co.status.runnable() {
			r.cursor = (idx + 1) % n
			return co, true
		}
	}
	return nil, false
}

// each calls fn for every occupied slot in index order.
func (r *registry) each(fn func(*coroutine)) {
	for i := range r.slots {
		if co := r.slots[i].co; co != nil {
			fn(co)
		}
	}
}
