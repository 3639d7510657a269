package core

import (
	"time"

	"arenacore/actor"
	"arenacore/client"
	"arenacore/config"
	"arenacore/ratelimit"
	"arenacore/session"
	"arenacore/subsystems"
)

// Dependencies are every external collaborator the core needs (spec §1
// "out of scope" list), plus the process configuration (spec §6).
type Dependencies struct {
	Config  config.Config
	ArenaID string

	SessionStore session.Store
	IPLimiter    *ratelimit.IPLimiter
	DBLimiter    *ratelimit.DBLimiter

	Game        subsystems.GameService
	Chat        subsystems.ChatService
	Team        subsystems.TeamService
	Player      subsystems.PlayerService
	Invitation  subsystems.InvitationService
	Leaderboard subsystems.LeaderboardService
	Liveboard   subsystems.LiveboardService
	System      subsystems.SystemService
	Metric      subsystems.MetricService

	Trace *TraceWriter

	// TickInterval/PruneInterval/PersistInterval pace the three periodic
	// triggers (spec §4.G/H/I). Zero disables the corresponding ticker,
	// useful for tests that drive these sweeps by hand.
	TickInterval    time.Duration
	PruneInterval   time.Duration
	PersistInterval time.Duration
}

// Actor is the single logical actor that owns the whole client table
// (spec §5, §9 "Actor+mailbox -> single-writer event loop"). Every field
// below is touched only from Receive, running on this actor's own
// goroutine, except during broadcaster Phase 2 fan-out which treats the
// table as read-only (spec §4.G).
type Actor struct {
	deps Dependencies

	records      map[client.PlayerID]*Record
	sessionIndex map[client.SessionID]client.PlayerID
	tick         uint64

	stopTickers chan struct{}
}

// New constructs an Actor ready to be wrapped in actor.NewProps and spawned.
func New(deps Dependencies) *Actor {
	return &Actor{
		deps:         deps,
		records:      make(map[client.PlayerID]*Record),
		sessionIndex: make(map[client.SessionID]client.PlayerID),
	}
}

// Props returns actor.Props producing fresh Actors sharing these
// dependencies — Spawn calls the producer exactly once, so this is only
// ever used for the one live instance.
func Props(deps Dependencies) *actor.Props {
	return actor.NewProps(func() actor.Actor {
		return New(deps)
	})
}

// Receive is the core's sole entry point (spec §5): every inbound event is
// delivered here, one at a time, by the actor's mailbox.
func (a *Actor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {

	case actor.Started:
		a.stopTickers = make(chan struct{})
		go a.runTickers(ctx.Engine(), ctx.Self(), a.stopTickers)

	case actor.Stopping:
		if a.stopTickers != nil {
			close(a.stopTickers)
			a.stopTickers = nil
		}

	case actor.Stopped:
		// nothing further to release; the table dies with the actor.

	case AuthenticateRequest:
		a.handleAuthenticate(ctx, msg)

	case *authenticateContinuation:
		a.handleAuthenticateContinuation(ctx.Engine(), msg)

	case Register:
		a.handleRegister(ctx.Engine(), msg)

	case Unregister:
		a.handleUnregister(msg)

	case RoundTripTime:
		a.handleRoundTripTime(msg)

	case RequestMsg:
		ctx.Reply(a.handleRequest(msg))

	case AdminStatusRequest:
		ctx.Reply(a.handleAdminStatus(msg))

	case tickMsg:
		a.handleTick(ctx.Engine())

	case pruneMsg:
		a.handlePrune()

	case persistMsg:
		a.handlePersist(ctx.Engine())
	}
}

// runTickers drives the three periodic triggers spec §4.G/H/I describe,
// serializing them back through the mailbox so they never race the
// handlers above — the actor is the only thing that ever mutates the
// table (spec §5).
func (a *Actor) runTickers(eng *actor.Engine, self *actor.PID, stop chan struct{}) {
	var tickC, pruneC, persistC <-chan time.Time

	if a.deps.TickInterval > 0 {
		t := time.NewTicker(a.deps.TickInterval)
		defer t.Stop()
		tickC = t.C
	}
	if a.deps.PruneInterval > 0 {
		t := time.NewTicker(a.deps.PruneInterval)
		defer t.Stop()
		pruneC = t.C
	}
	if a.deps.PersistInterval > 0 {
		t := time.NewTicker(a.deps.PersistInterval)
		defer t.Stop()
		persistC = t.C
	}

	for {
		select {
		case <-stop:
			return
		case <-tickC:
			eng.Send(self, tickMsg{}, nil)
		case <-pruneC:
			eng.Send(self, pruneMsg{}, nil)
		case <-persistC:
			eng.Send(self, persistMsg{}, nil)
		}
	}
}
