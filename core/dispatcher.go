package core

import (
	"fmt"
	"math"
	"strings"
	"time"

	"arenacore/subsystems"
)

const (
	maxAliasLength = 24
	maxTraceLength = 2048
	minFPS         = 0
	maxFPS         = 144
)

// handleRequest implements spec §4.F: route one Request variant to the
// subsystem that owns its state, returning at most one immediate update
// addressed only to the originating channel.
func (a *Actor) handleRequest(msg RequestMsg) RequestReply {
	rec := a.recordByPlayer(msg.PlayerID)
	if rec == nil {
		fmt.Printf("core: request for unknown player %s: %T\n", msg.PlayerID, msg.Body)
		return RequestReply{Err: ErrPlayerNotExist}
	}

	switch body := msg.Body.(type) {

	case GameCommand:
		update, err := a.deps.Game.PlayerCommand(msg.PlayerID, body.Cmd)
		if err != nil {
			fmt.Printf("core: game command from %s failed: %v\n", msg.PlayerID, err)
		}
		return RequestReply{Update: update, Err: err}

	case SetAlias:
		return a.handleSetAlias(rec, body)

	case TallyFps:
		return a.handleTallyFps(rec, body)

	case Trace:
		return a.handleTrace(rec, body)

	case subsystems.ChatRequest:
		reply, err := a.deps.Chat.HandleRequest(msg.PlayerID, body)
		return RequestReply{Update: reply, Err: err}

	case subsystems.InvitationRequest:
		reply, err := a.deps.Invitation.HandleRequest(msg.PlayerID, body)
		return RequestReply{Update: reply, Err: err}

	case subsystems.PlayerRequest:
		return a.handlePlayerRequest(rec, body)

	case subsystems.TeamRequest:
		reply, err := a.deps.Team.HandleRequest(msg.PlayerID, body)
		return RequestReply{Update: reply, Err: err}
	}

	fmt.Printf("core: unrecognized request body %T from %s\n", msg.Body, msg.PlayerID)
	return RequestReply{}
}

func (a *Actor) handleSetAlias(rec *Record, req SetAlias) RequestReply {
	if rec.IsAlive(time.Now(), a.deps.Config.AliasAliveGrace) {
		return RequestReply{Err: ErrCannotChangeAliasWhileAlive}
	}
	sanitized := sanitizeAlias(req.Alias, a.deps.Game.DefaultAlias())
	rec.Alias = sanitized
	return RequestReply{Update: AliasSet{Alias: sanitized}}
}

func (a *Actor) handleTallyFps(rec *Record, req TallyFps) RequestReply {
	if math.IsNaN(float64(req.FPS)) || math.IsInf(float64(req.FPS), 0) {
		return RequestReply{Err: ErrInvalidFPS}
	}
	fps := req.FPS
	if fps < minFPS {
		fps = minFPS
	}
	if fps > maxFPS {
		fps = maxFPS
	}
	rec.Metrics.FPS = fps
	return RequestReply{Update: FpsTallied{}}
}

func (a *Actor) handleTrace(rec *Record, req Trace) RequestReply {
	if len(req.Message) > maxTraceLength {
		return RequestReply{Err: ErrTraceTooLong}
	}
	if rec.Traces >= a.deps.Config.MaxTracesPerPlayer {
		return RequestReply{Err: ErrTooManyTraces}
	}

	line := fmt.Sprintf("ref=%s, reg=%s, ua=%s, msg=<%s>",
		derefString(rec.Metrics.Referrer), rec.Metrics.Region, derefString(rec.Metrics.UserAgentID), req.Message)
	a.deps.Trace.Write(line)
	rec.Traces++

	return RequestReply{Update: Traced{}}
}

func (a *Actor) handlePlayerRequest(rec *Record, req subsystems.PlayerRequest) RequestReply {
	if req.Report == nil {
		return RequestReply{}
	}
	if len(rec.Reported) >= a.deps.Config.MaxReportedPlayers {
		return RequestReply{}
	}
	rec.Reported[*req.Report] = struct{}{}
	return RequestReply{}
}

func sanitizeAlias(alias, fallback string) string {
	s := strings.TrimSpace(alias)
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if len(s) > maxAliasLength {
		s = s[:maxAliasLength]
	}
	if s == "" {
		return fallback
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
