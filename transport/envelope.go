package transport

import (
	"encoding/json"
	"fmt"

	"arenacore/core"
	"arenacore/subsystems"
)

// inboundFrame is the wire envelope for one client->server frame. The wire
// format itself is implementation-defined (spec §1 Non-goals: "wire format
// / binary layout"); this is one concrete JSON choice, mirroring the
// teacher's websocket.JSON.Receive-into-a-tagged-struct style.
type inboundFrame struct {
	Type string          `json:"type"`
	Body json.RawMessage `json:"body"`
}

// GameCommandDecoder turns a frame's raw body into the concrete command
// type a GameService.PlayerCommand implementation expects. Set on Handler
// so transport never has to know any particular game's command shape.
type GameCommandDecoder func(json.RawMessage) (interface{}, error)

// decodeRequest maps an inboundFrame to one of the RequestMsg.Body shapes
// core/messages.go documents, or to a core.RoundTripTime event, which
// bypasses the dispatcher entirely (spec §4.F is silent on rtt; §6 treats
// it as a standalone sample).
func decodeRequest(frame inboundFrame, decodeGame GameCommandDecoder) (interface{}, error) {
	switch frame.Type {
	case "rtt":
		var body struct {
			RTTMillis uint16 `json:"rtt_ms"`
		}
		if err := json.Unmarshal(frame.Body, &body); err != nil {
			return nil, err
		}
		return core.RoundTripTime{RTTMillis: body.RTTMillis}, nil

	case "game":
		if decodeGame == nil {
			return nil, fmt.Errorf("transport: no game command decoder configured")
		}
		cmd, err := decodeGame(frame.Body)
		if err != nil {
			return nil, err
		}
		return core.GameCommand{Cmd: cmd}, nil

	case "set_alias":
		var body struct {
			Alias string `json:"alias"`
		}
		if err := json.Unmarshal(frame.Body, &body); err != nil {
			return nil, err
		}
		return core.SetAlias{Alias: body.Alias}, nil

	case "tally_fps":
		var body struct {
			FPS float32 `json:"fps"`
		}
		if err := json.Unmarshal(frame.Body, &body); err != nil {
			return nil, err
		}
		return core.TallyFps{FPS: body.FPS}, nil

	case "trace":
		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(frame.Body, &body); err != nil {
			return nil, err
		}
		return core.Trace{Message: body.Message}, nil

	case "chat":
		var body subsystems.ChatRequest
		if err := json.Unmarshal(frame.Body, &body); err != nil {
			return nil, err
		}
		return body, nil

	case "invitation":
		var body subsystems.InvitationRequest
		if err := json.Unmarshal(frame.Body, &body); err != nil {
			return nil, err
		}
		return body, nil

	case "player":
		var body subsystems.PlayerRequest
		if err := json.Unmarshal(frame.Body, &body); err != nil {
			return nil, err
		}
		return body, nil

	case "team":
		var body subsystems.TeamRequest
		if err := json.Unmarshal(frame.Body, &body); err != nil {
			return nil, err
		}
		return body, nil

	default:
		return nil, fmt.Errorf("transport: unknown frame type %q", frame.Type)
	}
}
