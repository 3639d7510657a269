package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoActor struct {
	received chan interface{}
}

func (a *echoActor) Receive(ctx Context) {
	switch msg := ctx.Message().(type) {
	case string:
		a.received <- msg
		if ctx.RequestID() != "" {
			ctx.Reply("echo:" + msg)
		}
	}
}

func TestEngineSendDeliversMessage(t *testing.T) {
	engine := NewEngine()
	received := make(chan interface{}, 1)
	pid := engine.Spawn(NewProps(func() Actor { return &echoActor{received: received} }))
	require.NotNil(t, pid)

	engine.Send(pid, "hello", nil)

	select {
	case msg := <-received:
		assert.Equal(t, "hello", msg)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}

func TestEngineAskReturnsReply(t *testing.T) {
	engine := NewEngine()
	pid := engine.Spawn(NewProps(func() Actor { return &echoActor{received: make(chan interface{}, 4)} }))
	require.NotNil(t, pid)

	reply, err := engine.Ask(pid, "ping", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "echo:ping", reply)
}

func TestEngineAskTimesOutWhenActorDoesNotReply(t *testing.T) {
	engine := NewEngine()
	pid := engine.Spawn(NewProps(func() Actor {
		return &silentActor{}
	}))
	require.NotNil(t, pid)

	_, err := engine.Ask(pid, "ping", 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
}

type silentActor struct{}

func (a *silentActor) Receive(ctx Context) {}

func TestEngineShutdownStopsAllActors(t *testing.T) {
	engine := NewEngine()
	for i := 0; i < 3; i++ {
		engine.Spawn(NewProps(func() Actor { return &silentActor{} }))
	}

	engine.Shutdown(time.Second)

	engine.mu.RLock()
	remaining := len(engine.actors)
	engine.mu.RUnlock()
	assert.Equal(t, 0, remaining)
}

func TestSpawnAfterShutdownReturnsNil(t *testing.T) {
	engine := NewEngine()
	engine.Shutdown(time.Second)

	pid := engine.Spawn(NewProps(func() Actor { return &silentActor{} }))
	assert.Nil(t, pid)
}
