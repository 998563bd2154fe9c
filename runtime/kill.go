package runtime

import "sync"

// parker lets a worker goroutine block waiting for an inter-worker channel
// without missing a concurrent Kill: Park blocks until either Unpark or
// Kill has been observed since the last Park returned. Grounded on
// _examples/original_source/src/circuit/runtime.rs's crossbeam Parker/
// Unparker pair, reimplemented with a channel since Go has no portable
// thread-parking primitive; the one-slot buffered channel gives the same
// "unpark before park is a no-op, not lost" semantics crossbeam's Parker
// provides.
type parker struct {
	wake chan struct{}
}

func newParker() *parker {
	return &parker{wake: make(chan struct{}, 1)}
}

// Park blocks until Unpark is called, including a call that happened
// before Park started (the buffered channel makes Unpark sticky rather
// than lost). Callers must check killed() both before and after Park, the
// same two checkpoints _examples/original_source/src/circuit/runtime.rs
// documents for its Parker: Kill always calls Unpark, so a parked worker
// is guaranteed to wake, but it is Kill's atomic flag, not the wake
// itself, that tells the worker why it woke.
func (p *parker) Park() {
	<-p.wake
}

func (p *parker) Unpark() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// killSwitch is the per-worker kill flag: set once by Handle.Kill and
// polled by the scheduler between operator evaluations (circuit.Circuit.
// StepKillable). The parker never reads it; Kill unparks the worker so a
// parked worker wakes and can check it.
type killSwitch struct {
	mu     sync.Mutex
	killed bool
}

func (k *killSwitch) set() {
	k.mu.Lock()
	k.killed = true
	k.mu.Unlock()
}

func (k *killSwitch) isSet() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.killed
}
