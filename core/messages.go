package core

import (
	"arenacore/client"
	"arenacore/session"
	"arenacore/subsystems"
)

// ArenaSession identifies a (arena, session) pair a reconnecting client
// presents (spec §4.D input).
type ArenaSession struct {
	ArenaID   string
	SessionID client.SessionID
}

// AuthenticateRequest is the Ask payload for spec §4.D. Sent via
// actor.Engine.Ask; the actor replies with AuthenticateReply.
type AuthenticateRequest struct {
	IP           *string
	UserAgentID  *string
	Referrer     *string
	Session      *ArenaSession
	InvitationID *subsystems.InvitationID
}

// AuthenticateReply is the resolved outcome of an AuthenticateRequest.
type AuthenticateReply struct {
	PlayerID client.PlayerID
	Err      error
}

// Register binds channel as player_id's live outbound channel (spec §4.E).
type Register struct {
	PlayerID client.PlayerID
	Channel  client.Channel
}

// Unregister detaches channel from player_id if it is still the bound
// channel (spec §4.E).
type Unregister struct {
	PlayerID client.PlayerID
	Channel  client.Channel
}

// RoundTripTime records a client-reported RTT sample (spec §4.F, §6).
type RoundTripTime struct {
	PlayerID  client.PlayerID
	RTTMillis uint16
}

// RequestMsg is the Ask payload for spec §4.F's dispatcher. Body is one of
// GameCommand, SetAlias, TallyFps, Trace, subsystems.ChatRequest,
// subsystems.InvitationRequest, subsystems.PlayerRequest or
// subsystems.TeamRequest. The actor replies with RequestReply.
type RequestMsg struct {
	PlayerID client.PlayerID
	Body     interface{}
}

// RequestReply carries the dispatcher's Option<Update> and error (spec
// §4.F: "returns Result<Option<Update>, &'static str>").
type RequestReply struct {
	Update interface{}
	Err    error
}

// GameCommand forwards a player command to GameService.PlayerCommand (spec
// §4.F: "Game(cmd) — hot path").
type GameCommand struct {
	Cmd interface{}
}

// SetAlias requests an alias change (spec §4.F).
type SetAlias struct {
	Alias string
}

// AliasSet is the successful SetAlias reply payload.
type AliasSet struct {
	Alias string
}

// TallyFps reports one FPS sample (spec §4.F).
type TallyFps struct {
	FPS float32
}

// FpsTallied is the successful TallyFps reply payload.
type FpsTallied struct{}

// Trace reports a client-side diagnostic line (spec §4.F).
type Trace struct {
	Message string
}

// Traced is the successful Trace reply payload.
type Traced struct{}

// internal, actor-only messages below; never sent across the mailbox
// boundary by callers.

// authenticateContinuation resumes an AuthenticateRequest after its store
// read (if any) has resolved, so the actual table mutation happens on the
// actor's own goroutine (spec §5: "no client record may be mutated by the
// suspending task").
type authenticateContinuation struct {
	req       AuthenticateRequest
	requestID string
	reused    *client.PlayerID
	found     *sessionLookup
}

// sessionLookup is what a successful store read produced: the stored
// session item, whose fields supplement the new record's metrics (spec
// §4.D step 6). An in-memory match does not build one; it travels as the
// reused player id instead. fromStore is set to true by the store read and
// is not consulted by finishAuthenticate.
type sessionLookup struct {
	item      session.Item
	fromStore bool
}

// tickMsg drives one broadcaster pass (spec §4.G).
type tickMsg struct{}

// pruneMsg drives one pruner sweep (spec §4.H).
type pruneMsg struct{}

// persistMsg drives one session-persister sweep (spec §4.I).
type persistMsg struct{}
