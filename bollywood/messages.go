package bollywood

// Started is sent to an actor after its goroutine has started.
type Started struct{}

// Stopping is sent to an actor to signal it should prepare to stop.
// No more user messages will be delivered after Stopping.
type Stopping struct{}

// Stopped is sent to an actor just before its goroutine exits.
type Stopped struct{}

// messageEnvelope wraps a user message with sender and reply information.
type messageEnvelope struct {
	sender  *PID
	message interface{}
	replyCh chan interface{}
}
