package transport

import (
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"golang.org/x/net/websocket"

	"arenacore/actor"
	"arenacore/client"
	"arenacore/core"
)

// askTimeout bounds how long a single request or authentication round trip
// may block a connection's goroutine (spec §4.F dispatcher is itself
// synchronous once it reaches the actor; this only guards against a wedged
// mailbox).
const askTimeout = 5 * time.Second

// Handler upgrades incoming HTTP connections to WebSocket and bridges each
// one to the core actor. Grounded on the teacher's server/handlers.go
// HandleSubscribe (spawn one per-connection worker, block until it's done)
// and server/connection_handler.go's ConnectionHandlerActor (readLoop +
// stopReadLoop/readLoopExited handshake, cleanup-on-exit), adapted from one
// actor per connection to one goroutine per connection since every
// connection ultimately just sends events to the single core actor.
type Handler struct {
	Engine     *actor.Engine
	Core       *actor.PID
	DecodeGame GameCommandDecoder
}

// NewHandler wires a transport handler to a running core actor.
func NewHandler(engine *actor.Engine, corePID *actor.PID, decodeGame GameCommandDecoder) *Handler {
	return &Handler{Engine: engine, Core: corePID, DecodeGame: decodeGame}
}

// Handle is a websocket.Handler: one invocation per accepted connection,
// for the lifetime of that connection (mirrors HandleSubscribe's
// spawn-then-block shape, minus the actor indirection).
func (h *Handler) Handle(ws *websocket.Conn) {
	defer ws.Close()
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("transport: panic recovered for %s: %v\n%s\n", remoteIP(ws), r, debug.Stack())
		}
	}()

	ip := remoteIP(ws)
	resp, err := h.Engine.Ask(h.Core, core.AuthenticateRequest{IP: &ip}, askTimeout)
	if err != nil {
		fmt.Printf("transport: authenticate ask failed: %v\n", err)
		return
	}
	reply, ok := resp.(core.AuthenticateReply)
	if !ok || reply.Err != nil {
		if !ok {
			fmt.Printf("transport: unexpected authenticate reply type %T\n", resp)
		} else {
			fmt.Printf("transport: authenticate denied for %s: %v\n", ip, reply.Err)
		}
		return
	}

	ch := newWSChannel(ws)
	h.Engine.Send(h.Core, core.Register{PlayerID: reply.PlayerID, Channel: ch}, nil)

	h.readLoop(ws, reply.PlayerID, ch)
}

// readLoop blocks reading frames until the connection dies, then
// unregisters — the cleanup half of the teacher's
// performCleanupActions/signalAndWaitForReadLoop pattern, simplified
// because there is exactly one goroutine per connection here instead of a
// dedicated reader goroutine signaled from outside.
func (h *Handler) readLoop(ws *websocket.Conn, playerID client.PlayerID, ch *wsChannel) {
	defer h.Engine.Send(h.Core, core.Unregister{PlayerID: playerID, Channel: ch}, nil)

	for {
		var frame inboundFrame
		if err := websocket.JSON.Receive(ws, &frame); err != nil {
			return
		}

		body, err := decodeRequest(frame, h.DecodeGame)
		if err != nil {
			fmt.Printf("transport: frame decode failed for %s: %v\n", playerID, err)
			continue
		}

		if rtt, ok := body.(core.RoundTripTime); ok {
			rtt.PlayerID = playerID
			h.Engine.Send(h.Core, rtt, nil)
			continue
		}

		resp, err := h.Engine.Ask(h.Core, core.RequestMsg{PlayerID: playerID, Body: body}, askTimeout)
		if err != nil {
			fmt.Printf("transport: request ask failed for %s: %v\n", playerID, err)
			continue
		}
		reply, ok := resp.(core.RequestReply)
		if !ok {
			fmt.Printf("transport: unexpected request reply type %T\n", resp)
			continue
		}
		if reply.Err != nil {
			fmt.Printf("transport: request denied for %s: %v\n", playerID, reply.Err)
			continue
		}
		if reply.Update != nil {
			if err := ch.Send(reply.Update); err != nil {
				return
			}
		}
	}
}

// remoteIP extracts the bare IP from a websocket connection's remote
// address, for the per-IP admission limiter (spec §4.A).
func remoteIP(ws *websocket.Conn) string {
	addr := ws.RemoteAddr().String()
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
