// Package counter is a trivial deterministic GameService: every tick it
// hands each connected player its own running tick count. It stands in
// for the teacher's Pong simulation (ball/paddle/grid physics), which is
// explicitly out of scope for the core per spec.md §1 — see DESIGN.md
// "Dropped/replaced teacher files".
package counter

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"arenacore/client"
)

// ClientData is the per-player opaque scratch this game keeps (spec §3
// "data").
type ClientData struct {
	Ticks int64
}

// Update is what GetClientUpdate sends each tick.
type Update struct {
	Ticks int64
}

// Command is the one player command this game accepts. PlayerCommand
// answers it with an immediate Update carrying Bump; the per-player tick
// counter in ClientData is not changed by it.
type Command struct {
	Bump int64
}

// Service is a minimal, real (not mocked) GameService implementation.
type Service struct {
	gameID string
	limbo  time.Duration

	mu      sync.Mutex
	present map[client.PlayerID]bool
}

// New returns a counter game with the given limbo grace period.
func New(gameID string, limbo time.Duration) *Service {
	return &Service{
		gameID:  gameID,
		limbo:   limbo,
		present: make(map[client.PlayerID]bool),
	}
}

func (s *Service) GameID() string                    { return s.gameID }
func (s *Service) Limbo() time.Duration              { return s.limbo }
func (s *Service) DefaultClientData() interface{}    { return &ClientData{} }
func (s *Service) DefaultAlias() string              { return "Guest" }

func (s *Service) PlayerJoined(id client.PlayerID) {
	s.mu.Lock()
	s.present[id] = true
	s.mu.Unlock()
}

func (s *Service) PlayerLeft(id client.PlayerID) {
	s.mu.Lock()
	delete(s.present, id)
	s.mu.Unlock()
}

func (s *Service) PlayerCommand(id client.PlayerID, cmd interface{}) (interface{}, error) {
	bump, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("counter: unsupported command %T", cmd)
	}
	return Update{Ticks: bump.Bump}, nil
}

func (s *Service) GetClientUpdate(tick uint64, id client.PlayerID, data *interface{}) (interface{}, bool) {
	cd, ok := (*data).(*ClientData)
	if !ok {
		cd = &ClientData{}
		*data = cd
	}
	cd.Ticks++
	return Update{Ticks: cd.Ticks}, true
}

// DecodeCommand unmarshals a raw wire body into this game's Command type.
// transport dispatches here for frames of type "game" so it never needs to
// know any game's concrete command shape (transport/envelope.go).
func DecodeCommand(raw json.RawMessage) (interface{}, error) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return nil, fmt.Errorf("counter: decode command: %w", err)
	}
	return cmd, nil
}
