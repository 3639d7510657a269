package actor

// Actor is anything that can receive and react to messages delivered
// through its mailbox. State lives on the concrete type; Receive is the
// only entry point, so every mutation of that state happens on the
// actor's own goroutine.
type Actor interface {
	Receive(ctx Context)
}

// Producer builds a fresh Actor instance. Spawn calls it exactly once.
type Producer func() Actor

// Props configures how an actor is produced.
type Props struct {
	producer Producer
}

// NewProps wraps a Producer in Props for Engine.Spawn.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("actor: producer cannot be nil")
	}
	return &Props{producer: producer}
}

func (p *Props) produce() Actor {
	return p.producer()
}
