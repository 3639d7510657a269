// Package subsystems declares the contracts for every collaborator the
// core treats as external (spec §1): the game simulation plus Chat, Team,
// Invitation, Player, Leaderboard, Liveboard, System and Metric. Each
// interface mirrors the delta()/initializer()/handle_*_request() shape
// spec §1 describes, and ships one minimal concrete implementation so the
// core can be exercised end to end (spec.md's distillation treats these
// as out of scope; SPEC_FULL supplements them, see DESIGN.md).
package subsystems

import (
	"time"

	"arenacore/client"
)

// GameService is the generic game parameterization spec §9 calls for: the
// core knows nothing about a specific game beyond this contract.
type GameService interface {
	// GameID identifies the game (spec §6 GAME_ID).
	GameID() string
	// Limbo is the game-defined grace period before Connected -> Limbo
	// clients are demoted to Stale (spec §3).
	Limbo() time.Duration
	// DefaultClientData returns a fresh value for a client's opaque
	// per-game scratch (spec §3 "data").
	DefaultClientData() interface{}
	// DefaultAlias is the alias assigned before a client ever calls
	// SetAlias (spec §6 default_alias()).
	DefaultAlias() string
	// PlayerJoined is called exactly once per logical join (spec §3
	// invariant 4).
	PlayerJoined(id client.PlayerID)
	// PlayerLeft is called exactly once per logical leave.
	PlayerLeft(id client.PlayerID)
	// PlayerCommand forwards a Game(cmd) request (spec §4.F) and may
	// return an immediate per-client update.
	PlayerCommand(id client.PlayerID, cmd interface{}) (update interface{}, err error)
	// GetClientUpdate computes this tick's per-client game update. data is
	// an exclusive pointer to the client's own scratch value for the
	// duration of the call (spec §4.G phase 2 step 1, §9 "thread-confined
	// per-client data").
	GetClientUpdate(tick uint64, id client.PlayerID, data *interface{}) (update interface{}, ok bool)
}
