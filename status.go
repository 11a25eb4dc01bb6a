package cosched

import "strconv"

// Status is the lifecycle state of a coroutine.
//
//	New -> Running <-> Waiting
//	          |
//	          v
//	        Dead
//
// Only the scheduler moves a coroutine into Running, only Wait moves it
// into Waiting, and only the return of its entry function moves it into
// Dead. Nothing leaves Dead.
type Status uint8

const (
	// StatusNew is a registered coroutine that has never executed.
	StatusNew Status = iota + 1
	// StatusRunning is a coroutine that has been dispatched at least
	// once and is runnable.
	StatusRunning
	// StatusWaiting is a coroutine suspended inside Wait.
	StatusWaiting
	// StatusDead is a coroutine whose entry function has returned but
	// which has not been reaped yet.
	StatusDead
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusRunning:
		return "running"
	case StatusWaiting:
		return "waiting"
	case StatusDead:
		return "dead"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// runnable reports whether the scheduler may select a coroutine in
// this state. Waiting coroutines are parked until the coroutine they
// wait on is retired.
func (s Status) runnable() bool {
	return s == StatusNew || s == StatusRunning
}
