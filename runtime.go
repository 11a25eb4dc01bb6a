package cosched

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uber-go/tally/v4"
)

// DefaultCapacity is the number of registry slots of a Runtime created
// without WithCapacity. The main coroutine occupies one of them.
const DefaultCapacity = 128

// mainLabel is the label of the bootstrap coroutine.
const mainLabel = "main"

// coroutine is the record of one logical thread of control.
type coroutine struct {
	handle Handle
	label  string
	entry  func(any)
	arg    any
	status Status

	// fiber holds the stack and saved execution point. It is nil for
	// the main coroutine, which runs on the goroutine that created the
	// Runtime, and for records that have not been launched yet or have
	// been retired.
	fiber *fiber

	// waiter is the coroutine blocked in Wait on this one, waitingOn
	// the coroutine this one is blocked on.
	waiter    *coroutine
	waitingOn *coroutine
	detached  bool
}

// Runtime multiplexes coroutines onto the goroutine that created it.
//
// A Runtime is not safe for concurrent use: it must only be driven from
// the creating goroutine and from the entry functions of the coroutines
// it starts. Control changes hands only inside Start, Yield and Wait.
type Runtime struct {
	id      uuid.UUID
	reg     *registry
	main    *coroutine
	current *coroutine

	// handoff is the waiter to dispatch before the next round-robin
	// scan, set when the coroutine it waits on is retired.
	handoff *coroutine

	// poison is set once the scheduler has starved.
	poison error

	logger  *slog.Logger
	metrics *metrics
}

type options struct {
	capacity int
	logger   *slog.Logger
	scope    tally.Scope
}

// Option configures a Runtime.
type Option func(*options)

// WithCapacity sets the number of registry slots, including the one
// used by the main coroutine.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger sets the logger for scheduling diagnostics. Most records
// are emitted at debug level. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the scope that scheduling counters are reported to.
func WithMetrics(scope tally.Scope) Option {
	return func(o *options) {
		o.scope = scope
	}
}

// New creates a Runtime and registers the calling flow as its main
// coroutine, so that Yield and Wait are usable before anything else has
// been started. It panics if the capacity is below 1.
func New(opts ...Option) *Runtime {
	o := options{
		capacity: DefaultCapacity,
		logger:   slog.New(slog.DiscardHandler),
		scope:    tally.NoopScope,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity < 1 {
		panic(fmt.Sprintf("cosched: invalid capacity %d", o.capacity))
	}

	rt := &Runtime{
		id:      uuid.New(),
		reg:     newRegistry(o.capacity),
		metrics: newMetrics(o.scope),
	}
	rt.logger = o.logger.With(slog.String("runtime", rt.id.String()))

	main := &coroutine{label: mainLabel, status: StatusRunning}
	h, err := rt.reg.register(main)
	if err != nil {
		panic(err)
	}
	main.handle = h
	rt.main = main
	rt.current = main
	rt.metrics.live.Update(float64(rt.reg.count))

	rt.logger.Debug("cosched: runtime initialized",
		slog.Int("capacity", o.capacity))
	return rt
}

// ID returns the random identifier of the Runtime, also attached to
// every log record it emits.
func (rt *Runtime) ID() uuid.UUID {
	return rt.id
}

// Main returns the Handle of the main coroutine.
func (rt *Runtime) Main() Handle {
	return rt.main.handle
}

// Current returns the Handle of the running coroutine.
func (rt *Runtime) Current() Handle {
	return rt.current.handle
}

// Status returns the state of the coroutine named by h. It fails with
// ErrNotFound once the coroutine has been reaped.
func (rt *Runtime) Status(h Handle) (Status, error) {
	co, err := rt.reg.lookup(h)
	if err != nil {
		return 0, err
	}
	return co.status, nil
}

// Label returns the label the coroutine named by h was started with.
func (rt *Runtime) Label(h Handle) (string, error) {
	co, err := rt.reg.lookup(h)
	if err != nil {
		return "", err
	}
	return co.label, nil
}

// Len returns the number of registered coroutines, the main coroutine
// and dead but unreaped ones included.
func (rt *Runtime) Len() int {
	return rt.reg.count
}

// Cap returns the registry capacity.
func (rt *Runtime) Cap() int {
	return len(rt.reg.slots)
}

// Handles returns the Handles of all registered coroutines in slot
// order.
func (rt *Runtime) Handles() []Handle {
	hs := make([]Handle, 0, rt.reg.count)
	rt.reg.each(func(co *coroutine) {
		hs = append(hs, co.handle)
	})
	return hs
}

func (rt *Runtime) checkPoison() {
	if rt.poison != nil {
		panic(rt.poison)
	}
}

func (rt *Runtime) logAttrs(co *coroutine) []any {
	return []any{
		slog.String("coroutine", co.label),
		slog.Uint64("slot", uint64(co.handle.index)),
	}
}
