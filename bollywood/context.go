package bollywood

// Context provides information and capabilities to an Actor during message
// processing.
type Context interface {
	// Engine returns the Actor Engine managing this actor.
	Engine() *Engine
	// Self returns the PID of the actor processing the message.
	Self() *PID
	// Sender returns the PID of the actor that sent the message, if available.
	Sender() *PID
	// Message returns the actual message being processed.
	Message() interface{}
	// Respond replies to the caller when the message was delivered via Ask.
	// It is a no-op for plain Sends.
	Respond(reply interface{})
}

type actorContext struct {
	engine  *Engine
	self    *PID
	sender  *PID
	message interface{}
	replyCh chan interface{}
}

func (c *actorContext) Engine() *Engine      { return c.engine }
func (c *actorContext) Self() *PID           { return c.self }
func (c *actorContext) Sender() *PID         { return c.sender }
func (c *actorContext) Message() interface{} { return c.message }

func (c *actorContext) Respond(reply interface{}) {
	if c.replyCh == nil {
		return
	}
	select {
	case c.replyCh <- reply:
	default:
		// The asker already timed out; drop the reply.
	}
}
