package subsystems

import (
	"sync"

	"arenacore/client"
)

// LiveboardEntry is one row of the "who's doing something notable right
// now" board.
type LiveboardEntry struct {
	PlayerID client.PlayerID
	Headline string
}

// LiveboardUpdate is the per-tick delta (spec §4.G phase 2 step 6:
// "Liveboard::Updated{added, removed}").
type LiveboardUpdate struct {
	Added   []LiveboardEntry
	Removed []client.PlayerID
}

// LiveboardService owns the live event board.
type LiveboardService interface {
	// Delta returns what changed since the last tick, or ok=false if
	// nothing did (spec §4.G phase 1: "liveboard_delta").
	Delta() (LiveboardUpdate, bool)
	// Initializer returns the full current board.
	Initializer() LiveboardUpdate
	// Post adds or refreshes id's entry.
	Post(id client.PlayerID, headline string)
	// Clear removes id's entry.
	Clear(id client.PlayerID)
}

// MemLiveboardService is a minimal real liveboard.
type MemLiveboardService struct {
	mu      sync.Mutex
	board   map[client.PlayerID]string
	added   map[client.PlayerID]string
	removed map[client.PlayerID]struct{}
}

// NewMemLiveboardService returns an empty liveboard.
func NewMemLiveboardService() *MemLiveboardService {
	return &MemLiveboardService{
		board:   make(map[client.PlayerID]string),
		added:   make(map[client.PlayerID]string),
		removed: make(map[client.PlayerID]struct{}),
	}
}

func (s *MemLiveboardService) Post(id client.PlayerID, headline string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board[id] = headline
	s.added[id] = headline
	delete(s.removed, id)
}

func (s *MemLiveboardService) Clear(id client.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.board, id)
	delete(s.added, id)
	s.removed[id] = struct{}{}
}

func (s *MemLiveboardService) Delta() (LiveboardUpdate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.added) == 0 && len(s.removed) == 0 {
		return LiveboardUpdate{}, false
	}

	update := LiveboardUpdate{}
	for id, headline := range s.added {
		update.Added = append(update.Added, LiveboardEntry{PlayerID: id, Headline: headline})
	}
	for id := range s.removed {
		update.Removed = append(update.Removed, id)
	}
	s.added = make(map[client.PlayerID]string)
	s.removed = make(map[client.PlayerID]struct{})
	return update, true
}

func (s *MemLiveboardService) Initializer() LiveboardUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	update := LiveboardUpdate{}
	for id, headline := range s.board {
		update.Added = append(update.Added, LiveboardEntry{PlayerID: id, Headline: headline})
	}
	return update
}
