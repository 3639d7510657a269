package core

import (
	"arenacore/actor"
	"arenacore/client"
	"arenacore/subsystems"

	"golang.org/x/sync/errgroup"
)

// tickDeltas is Phase 1's output: every shared delta computed once,
// immutable for the rest of the tick (spec §4.G phase 1).
type tickDeltas struct {
	playerAdded     []subsystems.PlayerSummary
	playerRemoved   []client.PlayerID
	playerRealCount int
	playerOK        bool

	teamAdded   []subsystems.TeamSummary
	teamRemoved []string

	liveboard   subsystems.LiveboardUpdate
	liveboardOK bool

	leaderboards []subsystems.LeaderboardUpdate

	system   subsystems.SystemUpdate
	systemOK bool
}

// handleTick runs one broadcaster pass (spec §4.G). Phase 1 runs inline on
// the actor's own goroutine; Phase 2 fans out across connected clients in
// parallel, since the shared deltas are immutable for the tick and every
// other field besides a client's own `data` scratch is read-only during
// fan-out (spec §9 "explicit borrow discipline").
func (a *Actor) handleTick(eng *actor.Engine) {
	a.tick++
	deltas := a.computeTickDeltas()

	connected := make([]*Record, 0, len(a.records))
	for _, rec := range a.records {
		if rec.Status.Kind == client.Connected {
			connected = append(connected, rec)
		}
	}

	var g errgroup.Group
	for _, rec := range connected {
		rec := rec
		g.Go(func() error {
			a.fanOutOne(a.tick, rec, deltas)
			return nil
		})
	}
	_ = g.Wait() // fanOutOne never returns an error; sends are best-effort.
}

// computeTickDeltas implements spec §4.G Phase 1.
func (a *Actor) computeTickDeltas() tickDeltas {
	var d tickDeltas

	d.playerAdded, d.playerRemoved, d.playerRealCount, d.playerOK = a.deps.Player.Delta(a.deps.Team)
	d.teamAdded, d.teamRemoved, _ = a.deps.Team.Delta()
	d.liveboard, d.liveboardOK = a.deps.Liveboard.Delta()
	d.leaderboards = a.deps.Leaderboard.Deltas()
	d.system, d.systemOK = a.deps.System.Delta()

	return d
}

// fanOutOne implements spec §4.G Phase 2 for a single connected client.
// Every send is best-effort: a failure means the channel is dead, and the
// pruner recovers the player on its next sweep via a later unregister
// (spec §4.G: "a send failure is silently swallowed").
func (a *Actor) fanOutOne(tick uint64, rec *Record, d tickDeltas) {
	ch := rec.Status.Channel
	if ch == nil {
		return
	}
	send := func(update interface{}) { _ = ch.Send(update) }

	if update, ok := a.deps.Game.GetClientUpdate(tick, rec.PlayerID, &rec.Data); ok {
		send(update)
	}

	if d.playerOK {
		send(PlayerUpdate{Added: d.playerAdded, Removed: d.playerRemoved, RealPlayers: d.playerRealCount})
	}

	if len(d.teamAdded) > 0 {
		send(TeamAddedOrUpdated{Teams: d.teamAdded})
	}
	if len(d.teamRemoved) > 0 {
		send(TeamRemoved{TeamIDs: d.teamRemoved})
	}

	if delta, ok := a.deps.Chat.Delta(rec.PlayerID); ok {
		send(delta)
	}
	members, joiners, joins := a.deps.Team.PerPlayer(rec.PlayerID)
	if members != nil {
		send(*members)
	}
	if joiners != nil {
		send(*joiners)
	}
	if joins != nil {
		send(*joins)
	}

	for _, board := range d.leaderboards {
		send(board)
	}

	if d.liveboardOK {
		send(d.liveboard)
	}

	if d.systemOK {
		if len(d.system.Added) > 0 {
			send(SystemAdded{Servers: d.system.Added})
		}
		if len(d.system.Removed) > 0 {
			send(SystemRemoved{ServerIDs: d.system.Removed})
		}
	}
}
