package core

import (
	"errors"

	"arenacore/client"
)

// ErrAdminUnauthorized is returned when an AdminStatusRequest's token does
// not match the configured admin token, or no token is configured at all
// (admin surface disabled by default).
var ErrAdminUnauthorized = errors.New("core: invalid admin token")

// AdminStatusRequest is the Ask payload for the operator status surface,
// supplemented from original_source/server/src/main.rs's "/admin/" and
// "/status/" HTTP routes (core::admin::AdminState, ParameterizedAdminRequest,
// AdminRequest::RequestStatus). Unlike RequestMsg it answers for the whole
// arena rather than one connection, so it carries a shared token instead of
// a PlayerID.
type AdminStatusRequest struct {
	Token string
}

// AdminStatusReply answers an AdminStatusRequest with arena-wide counters.
type AdminStatusReply struct {
	ArenaID          string
	ServerID         string
	ConnectedPlayers int
	TotalPlayers     int
	Tick             uint64
	Err              error
}

// handleAdminStatus checks msg.Token against the configured admin token
// (empty configured token means the surface is disabled entirely) and, on
// success, reports a snapshot of the client table.
func (a *Actor) handleAdminStatus(msg AdminStatusRequest) AdminStatusReply {
	if a.deps.Config.AdminToken == "" || msg.Token != a.deps.Config.AdminToken {
		return AdminStatusReply{Err: ErrAdminUnauthorized}
	}

	connected := 0
	for _, rec := range a.records {
		if rec.Status.Kind == client.Connected {
			connected++
		}
	}

	return AdminStatusReply{
		ArenaID:          a.deps.ArenaID,
		ServerID:         a.deps.Config.ServerID,
		ConnectedPlayers: connected,
		TotalPlayers:     len(a.records),
		Tick:             a.tick,
	}
}
