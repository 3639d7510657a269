package actor

// Started is sent to an actor right after its goroutine is running.
type Started struct{}

// Stopping is sent once to tell an actor to wind down. No further user
// messages are delivered after Stopping is processed.
type Stopping struct{}

// Stopped is the final message an actor receives, just before its
// goroutine exits.
type Stopped struct{}

// envelope wraps a user message together with the sender PID (if any) and,
// for Ask requests, the id the caller is waiting on.
type envelope struct {
	sender    *PID
	message   interface{}
	requestID string
}
