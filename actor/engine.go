package actor

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrTimeout is returned by Ask when no reply arrives within the deadline.
var ErrTimeout = errors.New("actor: ask timed out")

// Engine owns every running actor process and routes messages between
// them. The core (§5) runs as a single actor spawned on one Engine; the
// Engine itself holds no domain state.
type Engine struct {
	pidCounter uint64
	actors     map[string]*process
	mu         sync.RWMutex
	stopping   atomic.Bool

	asksMu sync.Mutex
	asks   map[string]chan interface{}
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{
		actors: make(map[string]*process),
		asks:   make(map[string]chan interface{}),
	}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

// Spawn starts a new actor from props and returns its PID, or nil if the
// engine is shutting down.
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
	e.Send(pid, Started{}, nil)

	return pid
}

// Send delivers message to pid asynchronously; sender may be nil.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if pid == nil {
		return
	}

	_, isStopping := message.(Stopping)
	_, isStopped := message.(Stopped)
	_, isStarted := message.(Started)
	isSystemMsg := isStopping || isStopped || isStarted

	if e.stopping.Load() && !isSystemMsg {
		return
	}

	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if !ok {
		return
	}
	proc.deliver(&envelope{sender: sender, message: message})
}

// Ask sends message to pid and blocks until the actor calls ctx.Reply, the
// timeout elapses (returning ErrTimeout), or the actor is gone.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if pid == nil {
		return nil, fmt.Errorf("actor: ask target is nil")
	}

	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("actor: %s not found", pid.ID)
	}

	requestID := uuid.NewString()
	reply := make(chan interface{}, 1)

	e.asksMu.Lock()
	e.asks[requestID] = reply
	e.asksMu.Unlock()

	defer func() {
		e.asksMu.Lock()
		delete(e.asks, requestID)
		e.asksMu.Unlock()
	}()

	proc.deliver(&envelope{message: message, requestID: requestID})

	select {
	case resp := <-reply:
		return resp, nil
	case <-time.After(timeout):
		return nil, ErrTimeout
	}
}

// Resolve answers a pending Ask from outside the actor's own Receive call.
// It exists for handlers whose reply depends on an asynchronous suspension
// point (a store read, an outbound write) that must not block the mailbox:
// the handler captures ctx.RequestID() before spawning the suspending work,
// then calls Resolve once that work completes (spec §5's "suspension
// points" rule — no state is touched between capture and Resolve).
func (e *Engine) Resolve(requestID string, response interface{}) {
	e.resolveAsk(requestID, response)
}

func (e *Engine) resolveAsk(requestID string, response interface{}) {
	e.asksMu.Lock()
	reply, ok := e.asks[requestID]
	e.asksMu.Unlock()
	if !ok {
		return
	}
	select {
	case reply <- response:
	default:
	}
}

// Stop asks an actor to wind down and unblocks its run loop even if its
// mailbox is backed up.
func (e *Engine) Stop(pid *PID) {
	if pid == nil {
		return
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if !ok {
		return
	}

	e.Send(pid, Stopping{}, nil)
	closeOnce(proc.stopCh)
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops every actor and waits up to timeout for them to exit.
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
		e.Stop(pid)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
}
