package core

import (
	"arenacore/client"
	"arenacore/subsystems"
)

// SessionCreated is the very first message a freshly (re)registered channel
// receives (spec §6: "Client-first message"). ServerID is empty when the
// deployment doesn't tag sessions with a server identity.
type SessionCreated struct {
	ArenaID   string
	ServerID  string
	SessionID client.SessionID
	PlayerID  client.PlayerID
}

// PlayerUpdate is the per-tick roster delta (spec §4.G phase 2 step 2:
// "Player::Updated{added, removed, real_players}").
type PlayerUpdate struct {
	Added       []subsystems.PlayerSummary
	Removed     []client.PlayerID
	RealPlayers int
}

// TeamAddedOrUpdated carries the teams that changed this tick (spec §4.G
// phase 2 step 3).
type TeamAddedOrUpdated struct {
	Teams []subsystems.TeamSummary
}

// TeamRemoved carries the team ids that disappeared this tick.
type TeamRemoved struct {
	TeamIDs []string
}

// SystemAdded carries servers added or updated in the topology this tick
// (spec §4.G phase 2 step 7).
type SystemAdded struct {
	Servers []subsystems.ServerInfo
}

// SystemRemoved carries server ids dropped from the topology this tick.
type SystemRemoved struct {
	ServerIDs []string
}
