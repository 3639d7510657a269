// Package core is the client repository: the in-memory client table, its
// connection state machine, the authentication/admission pipeline, the
// per-tick broadcast pipeline, the pruner, and the session persister
// (spec §1, §4). It is implemented as one actor (Actor) whose mailbox
// serializes every inbound event (spec §5), grounded on the teacher's
// game/game_actor.go + game/game_actor_lifecycle.go actor shape.
package core

import (
	"time"

	"arenacore/client"
	"arenacore/session"
)

// Metrics accumulates the per-client counters spec §3 names.
type Metrics struct {
	DateCreated   time.Time
	DateRenewed   time.Time
	Plays         int
	PreviousPlays int
	Referrer      *string
	UserAgentID   *string
	Region        string
	RTTMillis     uint16
	FPS           float32
}

// Record is the per-player client record (spec §3 PlayerClientData). The
// core actor's records map is its sole owner; every field is mutated only
// from the core actor's own goroutine (spec §5).
type Record struct {
	PlayerID client.PlayerID
	Alias    string
	Status   client.Status

	// SessionID is duplicated here (and in the sessionIndex) so a record
	// can be looked up by player id while still knowing its own session.
	SessionID client.SessionID

	// SessionItem is the last value durably observed/written, used by the
	// persister to suppress redundant writes (spec §3 invariant 3).
	SessionItem *session.Item

	Metrics Metrics

	// Invitation/Chat/Team are opaque per-client view state owned by the
	// respective subsystem; core only resets them to nil on (re)register
	// to force re-initialization (spec §4.E step 4). The subsystems
	// themselves are keyed by PlayerID rather than holding references into
	// Record, per spec §9's "pass ids, not references" note — these fields
	// exist only as a register-time "needs re-init" marker.
	Invitation interface{}
	Chat       interface{}
	Team       interface{}

	// Reported is the bounded set of player ids this client has reported
	// (spec §3: "bounded growth bounded by N players").
	Reported map[client.PlayerID]struct{}

	// Traces counts client-error reports received, capped (spec §3: 25).
	Traces int

	// Data is opaque per-game scratch the GameService owns (spec §3).
	Data interface{}

	// ConnectedAt is when this record last transitioned into Connected; it
	// anchors the "alive for >1s blocks alias change" rule (spec §3
	// invariant 6). Zero means "never connected".
	ConnectedAt time.Time
}

// IsAlive reports whether this record has been Connected for longer than
// grace, the condition that blocks SetAlias (spec §3 invariant 6, S5).
func (r *Record) IsAlive(now time.Time, grace time.Duration) bool {
	if r.Status.Kind != client.Connected || r.ConnectedAt.IsZero() {
		return false
	}
	return now.Sub(r.ConnectedAt) > grace
}
