package subsystems

import (
	"sync"

	"arenacore/client"
)

// TeamSummary is one team's public state (spec §4.G: "Team::AddedOrUpdated").
type TeamSummary struct {
	ID      string
	Name    string
	Members []client.PlayerID
}

// TeamMembers/TeamJoiners/TeamJoins are the three optional per-player team
// components spec §4.G phase 2 step 4 names.
type TeamMembers struct{ Members []client.PlayerID }
type TeamJoiners struct{ Joiners []client.PlayerID }
type TeamJoins struct{ TeamIDs []string }

// TeamInit is the full baseline sent on register, only if the player has
// a team (spec §4.E step 6: "team initializer if any").
type TeamInit struct {
	Teams []TeamSummary
}

// TeamRequest is a Team(r) dispatcher payload (spec §4.F).
type TeamRequest struct {
	Join  *string // team id to join, if any
	Leave bool
}

// TeamService owns team membership (spec §1).
type TeamService interface {
	// Delta returns teams added/updated and removed since the last tick,
	// or ok=false if nothing changed (spec §4.G phase 1).
	Delta() (added []TeamSummary, removed []string, ok bool)
	// Initializer returns id's team baseline, if it belongs to one.
	Initializer(id client.PlayerID) (TeamInit, bool)
	// PerPlayer returns the three optional per-player components for id
	// this tick (spec §4.G phase 2 step 4).
	PerPlayer(id client.PlayerID) (members *TeamMembers, joiners *TeamJoiners, joins *TeamJoins)
	// HandleRequest delegates a Team(r) request.
	HandleRequest(id client.PlayerID, req TeamRequest) (reply interface{}, err error)
	// Forget drops id's team membership and any per-client view state
	// (spec §4.H cascade).
	Forget(id client.PlayerID)
}

// MemTeamService is a minimal real team implementation: teams have no size
// cap, and join/leave is last-write-wins.
type MemTeamService struct {
	mu       sync.Mutex
	teams    map[string]*TeamSummary
	memberOf map[client.PlayerID]string
	removed  []string
	dirty    bool
}

// NewMemTeamService returns an empty team service.
func NewMemTeamService() *MemTeamService {
	return &MemTeamService{
		teams:    make(map[string]*TeamSummary),
		memberOf: make(map[client.PlayerID]string),
	}
}

func (s *MemTeamService) HandleRequest(id client.PlayerID, req TeamRequest) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Leave {
		s.leaveLocked(id)
		s.dirty = true
		return nil, nil
	}
	if req.Join != nil {
		s.leaveLocked(id)
		teamID := *req.Join
		team, ok := s.teams[teamID]
		if !ok {
			team = &TeamSummary{ID: teamID, Name: teamID}
			s.teams[teamID] = team
		}
		team.Members = append(team.Members, id)
		s.memberOf[id] = teamID
		s.dirty = true
	}
	return nil, nil
}

func (s *MemTeamService) leaveLocked(id client.PlayerID) {
	teamID, ok := s.memberOf[id]
	if !ok {
		return
	}
	delete(s.memberOf, id)
	team, ok := s.teams[teamID]
	if !ok {
		return
	}
	for i, m := range team.Members {
		if m == id {
			team.Members = append(team.Members[:i], team.Members[i+1:]...)
			break
		}
	}
	if len(team.Members) == 0 {
		delete(s.teams, teamID)
		s.removed = append(s.removed, teamID)
	}
}

func (s *MemTeamService) Delta() ([]TeamSummary, []string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil, nil, false
	}
	s.dirty = false

	added := make([]TeamSummary, 0, len(s.teams))
	for _, t := range s.teams {
		added = append(added, cloneTeam(t))
	}
	var removed []string
	for _, id := range s.removed {
		if _, live := s.teams[id]; !live {
			removed = append(removed, id)
		}
	}
	s.removed = nil
	return added, removed, true
}

func (s *MemTeamService) Initializer(id client.PlayerID) (TeamInit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teamID, ok := s.memberOf[id]
	if !ok {
		return TeamInit{}, false
	}
	team := s.teams[teamID]
	return TeamInit{Teams: []TeamSummary{cloneTeam(team)}}, true
}

func (s *MemTeamService) PerPlayer(id client.PlayerID) (*TeamMembers, *TeamJoiners, *TeamJoins) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teamID, ok := s.memberOf[id]
	if !ok {
		return nil, nil, nil
	}
	team := s.teams[teamID]
	return &TeamMembers{Members: append([]client.PlayerID(nil), team.Members...)}, nil, nil
}

func (s *MemTeamService) Forget(id client.PlayerID) {
	s.mu.Lock()
	s.leaveLocked(id)
	s.dirty = true
	s.mu.Unlock()
}

func cloneTeam(t *TeamSummary) TeamSummary {
	return TeamSummary{ID: t.ID, Name: t.Name, Members: append([]client.PlayerID(nil), t.Members...)}
}
