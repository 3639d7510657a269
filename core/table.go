package core

import "arenacore/client"

// recordByPlayer looks up a player's record, or nil if none exists.
func (a *Actor) recordByPlayer(id client.PlayerID) *Record {
	return a.records[id]
}

// recordBySession resolves a session id to its owning record via the
// auxiliary index (spec §9 open question 3: "an implementation may
// maintain an auxiliary session_id -> player_id index to reduce this to
// O(1)").
func (a *Actor) recordBySession(sid client.SessionID) *Record {
	id, ok := a.sessionIndex[sid]
	if !ok {
		return nil
	}
	return a.records[id]
}

// insert adds a brand new record to the table and its session index.
func (a *Actor) insert(r *Record) {
	a.records[r.PlayerID] = r
	a.sessionIndex[r.SessionID] = r.PlayerID
}

// forget removes a player's record entirely and cascades cleanup into every
// owned subsystem (spec §4.H: "players.forget(id, teams, invitations,
// metrics)").
func (a *Actor) forget(id client.PlayerID) {
	r, ok := a.records[id]
	if !ok {
		return
	}
	delete(a.records, id)
	delete(a.sessionIndex, r.SessionID)

	a.deps.Team.Forget(id)
	a.deps.Chat.Forget(id)
	a.deps.Invitation.Forget(id)
	a.deps.Player.Forget(id)
	a.deps.Metric.Forget(id)
}

// newUniqueSessionID draws session ids until one doesn't collide with a
// currently tracked client (spec §4.D step 6).
func (a *Actor) newUniqueSessionID() client.SessionID {
	for {
		sid := client.NewSessionID()
		if _, exists := a.sessionIndex[sid]; !exists {
			return sid
		}
	}
}

// newUniquePlayerID draws player ids until one doesn't collide with a
// currently tracked client (spec §4.D step 6).
func (a *Actor) newUniquePlayerID() client.PlayerID {
	for {
		id := client.NewPlayerID()
		if _, exists := a.records[id]; !exists {
			return id
		}
	}
}
