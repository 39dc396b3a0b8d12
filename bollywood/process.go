package bollywood

import (
	"log"
	"runtime/debug"
	"sync/atomic"
)

const defaultMailboxSize = 1024

// process represents the running instance of an actor, including its state
// and mailbox.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	props   *Props
	mailbox chan *messageEnvelope
	stopped atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
	}
}

// deliver places a message in the mailbox. User messages are dropped once
// the actor has begun stopping; a full mailbox also drops.
func (p *process) deliver(envelope *messageEnvelope) {
	if _, isStopping := envelope.message.(Stopping); p.stopped.Load() && !isStopping {
		return
	}
	select {
	case p.mailbox <- envelope:
	default:
		log.Printf("bollywood: actor %s mailbox full, dropping %T", p.pid.ID, envelope.message)
	}
}

// run is the main loop for the actor process. Messages are handled strictly
// one at a time, which is what gives actors their single-threaded semantics.
func (p *process) run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bollywood: actor %s panicked: %v\n%s", p.pid.ID, r, debug.Stack())
		}
		p.stopped.Store(true)
		if p.actor != nil {
			p.invoke(&messageEnvelope{message: Stopped{}})
		}
		p.engine.remove(p.pid)
	}()

	p.actor = p.props.Produce()
	p.invoke(&messageEnvelope{message: Started{}})

	for envelope := range p.mailbox {
		if _, isStopping := envelope.message.(Stopping); isStopping {
			p.stopped.Store(true)
			p.invoke(envelope)
			return
		}
		p.invoke(envelope)
	}
}

func (p *process) invoke(envelope *messageEnvelope) {
	p.actor.Receive(&actorContext{
		engine:  p.engine,
		self:    p.pid,
		sender:  envelope.sender,
		message: envelope.message,
		replyCh: envelope.replyCh,
	})
}
