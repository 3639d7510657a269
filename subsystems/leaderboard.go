package subsystems

import (
	"sort"
	"sync"

	"arenacore/client"
)

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	PlayerID client.PlayerID
	Alias    string
	Score    int64
}

// LeaderboardUpdate is one period's board (spec §4.G phase 2 step 5:
// "Leaderboard::Updated(period, board)").
type LeaderboardUpdate struct {
	Period string
	Board  []LeaderboardEntry
}

// LeaderboardService tracks one board per period. Deltas are
// non-destructive (spec §4.G phase 1: "leaderboard_deltas (non-destructive;
// one per period)") — every tick recomputes the full board rather than
// diffing, since leaderboard reordering is rarely sparse.
type LeaderboardService interface {
	// Deltas returns one board per configured period, always, whether or
	// not anything changed; the broadcaster sends every returned board each
	// tick. The call is cheap and idempotent by design.
	Deltas() []LeaderboardUpdate
	// Initializers returns the same boards, for use as register-time
	// initializers (spec §4.E step 6: "each leaderboard initializer (one
	// per period)").
	Initializers() []LeaderboardUpdate
	// Record applies a score update for id in period.
	Record(period string, id client.PlayerID, alias string, score int64)
}

// MemLeaderboardService keeps an in-memory top-N board per period.
type MemLeaderboardService struct {
	mu      sync.Mutex
	periods map[string]map[client.PlayerID]LeaderboardEntry
	topN    int
}

// NewMemLeaderboardService returns a service tracking the given periods,
// each capped at topN entries.
func NewMemLeaderboardService(periods []string, topN int) *MemLeaderboardService {
	if topN <= 0 {
		topN = 50
	}
	m := make(map[string]map[client.PlayerID]LeaderboardEntry, len(periods))
	for _, p := range periods {
		m[p] = make(map[client.PlayerID]LeaderboardEntry)
	}
	return &MemLeaderboardService{periods: m, topN: topN}
}

func (s *MemLeaderboardService) Record(period string, id client.PlayerID, alias string, score int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.periods[period]
	if !ok {
		board = make(map[client.PlayerID]LeaderboardEntry)
		s.periods[period] = board
	}
	board[id] = LeaderboardEntry{PlayerID: id, Alias: alias, Score: score}
}

func (s *MemLeaderboardService) snapshot() []LeaderboardUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	updates := make([]LeaderboardUpdate, 0, len(s.periods))
	for period, board := range s.periods {
		entries := make([]LeaderboardEntry, 0, len(board))
		for _, e := range board {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
		if len(entries) > s.topN {
			entries = entries[:s.topN]
		}
		updates = append(updates, LeaderboardUpdate{Period: period, Board: entries})
	}
	sort.Slice(updates, func(i, j int) bool { return updates[i].Period < updates[j].Period })
	return updates
}

func (s *MemLeaderboardService) Deltas() []LeaderboardUpdate       { return s.snapshot() }
func (s *MemLeaderboardService) Initializers() []LeaderboardUpdate { return s.snapshot() }
