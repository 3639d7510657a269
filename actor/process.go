package actor

import (
	"fmt"
	"runtime/debug"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor: its state, its mailbox,
// and the goroutine that drains it one message at a time.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	mailbox chan *envelope
	props   *Props
	stopCh  chan struct{}
	stopped bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *envelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

// deliver enqueues a message for this actor. Mailbox-full drops the
// message rather than blocking the sender; this mirrors the teacher's
// non-blocking select-with-default send.
func (p *process) deliver(e *envelope) {
	select {
	case p.mailbox <- e:
	default:
		fmt.Printf("actor %s: mailbox full, dropping message type %T\n", p.pid.ID, e.message)
	}
}

func (p *process) run() {
	defer func() {
		p.stopped = true
		p.invokeReceive(Stopped{}, nil, "")
		p.engine.remove(p.pid)
	}()

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("actor %s: panic: %v\n%s\n", p.pid.ID, r, string(debug.Stack()))
			p.stopped = true
		}
	}()

	p.actor = p.props.produce()
	if p.actor == nil {
		panic(fmt.Sprintf("actor %s: producer returned a nil actor", p.pid.ID))
	}

	for {
		select {
		case <-p.stopCh:
			return

		case e := <-p.mailbox:
			if p.stopped {
				continue
			}
			switch msg := e.message.(type) {
			case Started:
				p.invokeReceive(msg, e.sender, e.requestID)
			case Stopping:
				p.stopped = true
				p.invokeReceive(msg, e.sender, e.requestID)
				closeOnce(p.stopCh)
			case Stopped:
				p.stopped = true
				p.invokeReceive(msg, e.sender, e.requestID)
				closeOnce(p.stopCh)
			default:
				p.invokeReceive(e.message, e.sender, e.requestID)
			}
		}
	}
}

func (p *process) invokeReceive(msg interface{}, sender *PID, requestID string) {
	ctx := &context{
		engine:    p.engine,
		self:      p.pid,
		sender:    sender,
		message:   msg,
		requestID: requestID,
	}
	p.actor.Receive(ctx)
}

func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}
