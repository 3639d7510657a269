package core

import (
	"fmt"
	"time"

	"arenacore/actor"
	"arenacore/client"
)

// handleRegister implements spec §4.E. A register for a player_id with no
// record is a no-op past a warning. Bots never hold a client record (spec
// §3 invariant 5), so a bot id takes that same no-record path; there is no
// separate bot check (spec §9 open question).
func (a *Actor) handleRegister(eng *actor.Engine, msg Register) {
	rec := a.recordByPlayer(msg.PlayerID)
	if rec == nil {
		fmt.Printf("core: register for unknown player %s\n", msg.PlayerID)
		return
	}

	now := time.Now()

	if err := msg.Channel.Send(SessionCreated{
		ArenaID:   a.deps.ArenaID,
		ServerID:  a.deps.Config.ServerID,
		SessionID: rec.SessionID,
		PlayerID:  rec.PlayerID,
	}); err != nil {
		fmt.Printf("core: SessionCreated send failed for %s: %v\n", msg.PlayerID, err)
	}

	rec.Data = a.deps.Game.DefaultClientData()
	rec.Chat = nil
	rec.Team = nil

	oldStatus := rec.Status
	rec.Status = client.ConnectedStatus(msg.Channel)
	rec.ConnectedAt = now

	switch oldStatus.Kind {
	case client.Connected:
		if oldStatus.Channel != nil {
			oldStatus.Channel.Close()
		}
	case client.Pending, client.Stale:
		rec.Metrics.Plays++
		a.deps.Game.PlayerJoined(rec.PlayerID)
		a.deps.Player.NotifyJoined(rec.PlayerID, rec.Alias)
	case client.Limbo:
		// restored within the grace window: no join (spec §4.C "Limbo ->
		// REGISTER -> Connected (restore, no join)").
	}

	a.sendInitializers(rec, msg.Channel)
}

// sendInitializers sends the fixed initializer sequence spec §4.E step 6
// requires, so that every client renders referenced ids consistently.
func (a *Actor) sendInitializers(rec *Record, ch client.Channel) {
	send := func(update interface{}) {
		if err := ch.Send(update); err != nil {
			fmt.Printf("core: initializer send failed for %s: %v\n", rec.PlayerID, err)
		}
	}

	for _, board := range a.deps.Leaderboard.Initializers() {
		send(board)
	}

	send(a.deps.Liveboard.Initializer())

	send(a.deps.Chat.Initializer(rec.PlayerID, a.connectedPlayerIDs()))

	send(a.deps.Player.Initializer())

	if teamInit, ok := a.deps.Team.Initializer(rec.PlayerID); ok {
		send(teamInit)
	}

	if systemInit, ok := a.deps.System.Initializer(); ok {
		send(systemInit)
	}
}

// handleUnregister implements spec §4.E: only a channel matching (by
// identity) the currently bound one moves the player to Limbo; anything
// else — including a register racing in with a newer channel — is a no-op.
func (a *Actor) handleUnregister(msg Unregister) {
	rec := a.recordByPlayer(msg.PlayerID)
	if rec == nil || rec.Status.Kind != client.Connected {
		return
	}
	if rec.Status.Channel == nil || rec.Status.Channel.Identity() != msg.Channel.Identity() {
		return
	}

	rec.Status = client.LimboStatus(time.Now(), a.deps.Game.Limbo())
}

// handleRoundTripTime records a client-reported RTT sample (spec §4.F,
// §6). No reply is sent — this is an out-of-band event.
func (a *Actor) handleRoundTripTime(msg RoundTripTime) {
	rec := a.recordByPlayer(msg.PlayerID)
	if rec == nil {
		return
	}
	rec.Metrics.RTTMillis = msg.RTTMillis
}

// connectedPlayerIDs returns the ids of every currently Connected,
// non-bot player, used as the roster context chat initializers compute
// against (spec §4.E step 6).
func (a *Actor) connectedPlayerIDs() []client.PlayerID {
	ids := make([]client.PlayerID, 0, len(a.records))
	for id, rec := range a.records {
		if rec.Status.Kind == client.Connected {
			ids = append(ids, id)
		}
	}
	return ids
}
