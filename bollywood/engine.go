package bollywood

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrTimeout is returned by Ask when no reply arrives in time.
	ErrTimeout = errors.New("bollywood: ask timed out")
	// ErrNotFound is returned when the target actor does not exist.
	ErrNotFound = errors.New("bollywood: actor not found")
)

// Engine manages the lifecycle and message dispatching for actors.
type Engine struct {
	pidCounter uint64
	actors     map[string]*process
	mu         sync.RWMutex
	stopping   atomic.Bool
}

// NewEngine creates a new actor engine.
func NewEngine() *Engine {
	return &Engine{actors: make(map[string]*process)}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

// Spawn creates and starts a new actor based on the provided Props.
// It returns the PID of the newly created actor, or nil when the engine
// is shutting down.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		return nil
	}

	pid := e.nextPID()
	proc := newProcess(e, pid, props)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()
	return pid
}

// Send delivers a message to the actor identified by the PID.
// sender can be nil if the message originates from outside the actor system.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if pid == nil || e.stopping.Load() {
		return
	}
	if proc := e.lookup(pid); proc != nil {
		proc.deliver(&messageEnvelope{sender: sender, message: message})
	}
}

// Ask delivers a message and waits up to timeout for the actor to Respond.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if pid == nil {
		return nil, ErrNotFound
	}
	proc := e.lookup(pid)
	if proc == nil {
		return nil, ErrNotFound
	}

	replyCh := make(chan interface{}, 1)
	proc.deliver(&messageEnvelope{message: message, replyCh: replyCh})

	select {
	case reply := <-replyCh:
		return reply, nil
	case <-time.After(timeout):
		return nil, ErrTimeout
	}
}

// Stop requests an actor to stop processing messages and shut down. The
// actor processes a Stopping message, then Stopped, then its goroutine exits.
func (e *Engine) Stop(pid *PID) {
	if pid == nil {
		return
	}
	if proc := e.lookup(pid); proc != nil {
		proc.deliver(&messageEnvelope{message: Stopping{}})
	}
}

// Shutdown stops all actors and waits for them to terminate gracefully.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}

	e.mu.RLock()
	pids := make([]*PID, 0, len(e.actors))
	for _, proc := range e.actors {
		pids = append(pids, proc.pid)
	}
	e.mu.RUnlock()

	for _, pid := range pids {
		if proc := e.lookup(pid); proc != nil {
			proc.deliver(&messageEnvelope{message: Stopping{}})
		}
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (e *Engine) lookup(pid *PID) *process {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.actors[pid.ID]
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}
