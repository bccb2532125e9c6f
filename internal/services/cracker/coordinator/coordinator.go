// Package coordinator implements the stop signal shared by all workers of a
// search run and the write-once slot holding the recovered key.
package coordinator

import (
	"sync"
	"sync/atomic"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
)

const (
	stateRunning uint32 = iota
	stateFound
	stateAborted
)

// Coordinator is created once per run. The zero value is ready to use.
type Coordinator struct {
	state atomic.Uint32

	resultMutex sync.Mutex
	result      []byte
}

func New() *Coordinator {
	return &Coordinator{}
}

// Done reports whether the run was stopped, by a match or by Abort.
// It is a single atomic load and is meant to be polled before every candidate.
func (c *Coordinator) Done() bool {
	return c.state.Load() != stateRunning
}

func (c *Coordinator) IsFound() bool {
	return c.state.Load() == stateFound
}

// ReportFound tries to make candidate the result of the run. Only the call
// that moves the run out of the running state stores its candidate, every
// other call returns false without touching the result. The candidate is
// copied, callers may reuse their buffer.
func (c *Coordinator) ReportFound(candidate []byte) bool {
	if !c.state.CompareAndSwap(stateRunning, stateFound) {
		return false
	}

	c.resultMutex.Lock()
	defer c.resultMutex.Unlock()

	if c.result == nil {
		c.result = append(make([]byte, 0, len(candidate)), candidate...)
	}

	return true
}

// Abort stops the run without a result. It returns false if the run was
// already stopped.
func (c *Coordinator) Abort() bool {
	return c.state.CompareAndSwap(stateRunning, stateAborted)
}

// Result returns a copy of the recovered key.
func (c *Coordinator) Result() ([]byte, bool) {
	c.resultMutex.Lock()
	defer c.resultMutex.Unlock()

	if c.result == nil {
		return nil, false
	}

	return append([]byte(nil), c.result...), true
}

func (c *Coordinator) Status() cracker.Status {
	switch c.state.Load() {
	case stateFound:
		return cracker.StatusFound
	case stateAborted:
		return cracker.StatusAborted
	default:
		return cracker.StatusInProgress
	}
}
