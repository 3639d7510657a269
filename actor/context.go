package actor

// Context is handed to Actor.Receive for each message. It exposes just
// enough of the engine for handlers to reply, forward, or spawn further
// work without reaching for package-level state.
type Context interface {
	// Engine returns the engine this actor is running under.
	Engine() *Engine
	// Self returns this actor's own PID.
	Self() *PID
	// Sender returns the PID of whoever sent the current message, if any.
	Sender() *PID
	// Message returns the message being processed.
	Message() interface{}
	// RequestID is non-empty when the current message arrived via Ask;
	// handlers that want to answer it call Reply.
	RequestID() string
	// Reply answers an Ask call. A no-op if the message didn't arrive via Ask.
	Reply(response interface{})
}

type context struct {
	engine    *Engine
	self      *PID
	sender    *PID
	message   interface{}
	requestID string
}

func (c *context) Engine() *Engine         { return c.engine }
func (c *context) Self() *PID              { return c.self }
func (c *context) Sender() *PID            { return c.sender }
func (c *context) Message() interface{}    { return c.message }
func (c *context) RequestID() string       { return c.requestID }

func (c *context) Reply(response interface{}) {
	if c.requestID == "" {
		return
	}
	c.engine.resolveAsk(c.requestID, response)
}
