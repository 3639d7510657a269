// Package transport is the WebSocket front door: it upgrades HTTP
// connections, authenticates them against the core, and bridges inbound
// frames to the core's Request/RoundTripTime/Unregister events (spec §1
// "out of scope: Transport (HTTP upgrade, TLS, framing)"). Grounded on the
// teacher's server/connection_handler.go readLoop/stopReadLoop rendezvous
// and server/handlers.go's HandleSubscribe, adapted from one actor per
// connection to one goroutine per connection talking to the single core
// actor (spec §5).
package transport

import (
	"sync"

	"golang.org/x/net/websocket"
)

// wsChannel adapts a golang.org/x/net/websocket.Conn to client.Channel.
// Sends are serialized with a mutex because the broadcaster fans out
// across clients in parallel and a dispatcher reply can race a tick send
// to the same connection (spec §5: "all updates delivered on one client
// channel are observed in the order the core enqueued them").
type wsChannel struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newWSChannel(conn *websocket.Conn) *wsChannel {
	return &wsChannel{conn: conn}
}

func (c *wsChannel) Send(update interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return websocket.JSON.Send(c.conn, update)
}

func (c *wsChannel) Close() {
	_ = c.conn.Close()
}

// Identity is the connection pointer itself: stable for the lifetime of
// one TCP connection, which is exactly the re-register tie-break spec
// §4.C needs ("unregister compares channel identity").
func (c *wsChannel) Identity() interface{} {
	return c.conn
}
