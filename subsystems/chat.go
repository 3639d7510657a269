package subsystems

import (
	"sync"

	"arenacore/client"
)

// ChatMessage is one chat line.
type ChatMessage struct {
	From    client.PlayerID
	Text    string
	SeqID   uint64
}

// ChatDelta is what changed for one player's chat view since it was last
// observed (spec §4.G phase 1: "(chat_delta, ...)").
type ChatDelta struct {
	New []ChatMessage
}

// ChatInit is the full-state baseline sent on register (spec §4.E step 6).
type ChatInit struct {
	Recent []ChatMessage
}

// ChatService owns chat state and exposes the delta/initializer/request
// contract spec §1 describes. Per-client view state lives behind the
// service, keyed by player id, as spec §9 prescribes ("table keyed by
// player_id... across subsystem boundaries" to avoid cross-subsystem
// reference cycles).
type ChatService interface {
	// Delta returns what's new for id since its last Delta/Initializer
	// call, or ok=false if nothing changed.
	Delta(id client.PlayerID) (delta ChatDelta, ok bool)
	// Initializer computes the full baseline for id, a freshly
	// (re)registered client, computed against the current player roster
	// (spec §4.E step 6).
	Initializer(id client.PlayerID, players []client.PlayerID) ChatInit
	// HandleRequest delegates a Chat(r) request (spec §4.F).
	HandleRequest(id client.PlayerID, req interface{}) (reply interface{}, err error)
	// Forget drops id's per-client view state (spec §4.H cascade).
	Forget(id client.PlayerID)
}

// MemChatService is a small ring-buffer chat implementation: enough to
// exercise Delta/Initializer/HandleRequest against real state.
type MemChatService struct {
	mu       sync.Mutex
	log      []ChatMessage
	nextSeq  uint64
	cursor   map[client.PlayerID]uint64
	maxLog   int
	maxInit  int
}

// NewMemChatService returns a chat service keeping at most maxLog messages.
func NewMemChatService(maxLog int) *MemChatService {
	if maxLog <= 0 {
		maxLog = 200
	}
	return &MemChatService{
		cursor: make(map[client.PlayerID]uint64),
		maxLog: maxLog,
		maxInit: 50,
	}
}

// ChatRequest is a Chat(r) dispatcher payload: HandleRequest appends Text
// to the log as a new message from the requesting player.
type ChatRequest struct {
	Text string
}

func (c *MemChatService) HandleRequest(id client.PlayerID, req interface{}) (interface{}, error) {
	post, ok := req.(ChatRequest)
	if !ok {
		return nil, nil
	}

	c.mu.Lock()
	c.nextSeq++
	msg := ChatMessage{From: id, Text: post.Text, SeqID: c.nextSeq}
	c.log = append(c.log, msg)
	if len(c.log) > c.maxLog {
		c.log = c.log[len(c.log)-c.maxLog:]
	}
	c.mu.Unlock()

	return nil, nil
}

func (c *MemChatService) Delta(id client.PlayerID) (ChatDelta, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	since := c.cursor[id]
	var fresh []ChatMessage
	for _, m := range c.log {
		if m.SeqID > since {
			fresh = append(fresh, m)
		}
	}
	if len(fresh) == 0 {
		return ChatDelta{}, false
	}
	c.cursor[id] = c.nextSeq
	return ChatDelta{New: fresh}, true
}

func (c *MemChatService) Initializer(id client.PlayerID, players []client.PlayerID) ChatInit {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := 0
	if len(c.log) > c.maxInit {
		start = len(c.log) - c.maxInit
	}
	recent := append([]ChatMessage(nil), c.log[start:]...)

	c.cursor[id] = c.nextSeq
	_ = players // roster context is available to richer implementations; unused by this minimal one

	return ChatInit{Recent: recent}
}

func (c *MemChatService) Forget(id client.PlayerID) {
	c.mu.Lock()
	delete(c.cursor, id)
	c.mu.Unlock()
}
