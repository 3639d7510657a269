package subsystems

import (
	"sync"

	"arenacore/client"
)

// PlayerSummary is the public roster entry for one player (spec §4.G
// phase 2 step 2: "Player::Updated{added, removed, real_players}").
type PlayerSummary struct {
	ID    client.PlayerID
	Alias string
}

// PlayerRosterInit is the full roster baseline sent on register (spec
// §4.E step 6).
type PlayerRosterInit struct {
	Players []PlayerSummary
}

// PlayerRequest is a Player(r) dispatcher payload (spec §4.F). Report is
// the one case §3 names explicitly ("reported": set of player-ids this
// client has reported).
type PlayerRequest struct {
	Report *client.PlayerID
}

// PlayerService owns the player roster snapshot used for the per-tick
// player_delta (spec §4.G phase 1). It is distinct from the client table
// itself (owned by core): this tracks only what the *other* clients need
// to know about the roster, same separation as the teacher's
// GameActor.players array versus RoomManager's aggregate counts.
type PlayerService interface {
	// Delta returns added/removed roster entries and the current real
	// (non-bot) player count since the last tick, or ok=false if nothing
	// changed (spec §4.G phase 1: "player_delta(&teams)").
	Delta(teams TeamService) (added []PlayerSummary, removed []client.PlayerID, realCount int, ok bool)
	// Initializer returns the full current roster.
	Initializer() PlayerRosterInit
	// HandleRequest delegates a Player(r) request, e.g. Report.
	HandleRequest(id client.PlayerID, req PlayerRequest) (reply interface{}, err error)
	// NotifyJoined/NotifyLeft keep the roster in sync with core's join/leave
	// calls to the game (spec §3 invariant 4 applies to the roster too).
	NotifyJoined(id client.PlayerID, alias string)
	NotifyLeft(id client.PlayerID)
	// Forget drops id from the roster entirely (spec §4.H cascade).
	Forget(id client.PlayerID)
}

// MemPlayerService is a minimal real roster implementation.
type MemPlayerService struct {
	mu      sync.Mutex
	roster  map[client.PlayerID]PlayerSummary
	added   map[client.PlayerID]PlayerSummary
	removed map[client.PlayerID]struct{}
}

// NewMemPlayerService returns an empty roster.
func NewMemPlayerService() *MemPlayerService {
	return &MemPlayerService{
		roster:  make(map[client.PlayerID]PlayerSummary),
		added:   make(map[client.PlayerID]PlayerSummary),
		removed: make(map[client.PlayerID]struct{}),
	}
}

func (s *MemPlayerService) NotifyJoined(id client.PlayerID, alias string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := PlayerSummary{ID: id, Alias: alias}
	s.roster[id] = entry
	s.added[id] = entry
	delete(s.removed, id)
}

func (s *MemPlayerService) NotifyLeft(id client.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.roster, id)
	delete(s.added, id)
	s.removed[id] = struct{}{}
}

func (s *MemPlayerService) Forget(id client.PlayerID) {
	s.mu.Lock()
	delete(s.roster, id)
	delete(s.added, id)
	delete(s.removed, id)
	s.mu.Unlock()
}

func (s *MemPlayerService) Delta(_ TeamService) ([]PlayerSummary, []client.PlayerID, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.added) == 0 && len(s.removed) == 0 {
		return nil, nil, len(s.roster), false
	}

	added := make([]PlayerSummary, 0, len(s.added))
	for _, entry := range s.added {
		added = append(added, entry)
	}
	removed := make([]client.PlayerID, 0, len(s.removed))
	for id := range s.removed {
		removed = append(removed, id)
	}
	s.added = make(map[client.PlayerID]PlayerSummary)
	s.removed = make(map[client.PlayerID]struct{})

	return added, removed, len(s.roster), true
}

func (s *MemPlayerService) Initializer() PlayerRosterInit {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]PlayerSummary, 0, len(s.roster))
	for _, entry := range s.roster {
		all = append(all, entry)
	}
	return PlayerRosterInit{Players: all}
}

func (s *MemPlayerService) HandleRequest(id client.PlayerID, req PlayerRequest) (interface{}, error) {
	if req.Report == nil {
		return nil, nil
	}
	// Reporting bookkeeping (the bounded "reported" set) lives on the
	// client record itself (spec §3); this subsystem just needs the
	// request to be addressable, matching the "delegate to the owning
	// subsystem" rule of spec §4.F.
	return nil, nil
}
