package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"arenacore/actor"
	"arenacore/config"
	"arenacore/core"
	"arenacore/game/counter"
	"arenacore/ratelimit"
	"arenacore/session"
	"arenacore/subsystems"
)

// newTestCore wires a real core.Actor the same way core's own test harness
// does, so transport is exercised against live state instead of a mock.
func newTestCore(t *testing.T) (*actor.Engine, *actor.PID) {
	t.Helper()

	trace, err := core.NewTraceWriter("")
	require.NoError(t, err)
	t.Cleanup(trace.Close)

	cfg := config.FastConfig()
	cfg.PendingExpiry = 2 * time.Second

	deps := core.Dependencies{
		Config:       cfg,
		ArenaID:      "arena-test",
		SessionStore: session.NewMemoryStore(),
		IPLimiter:    ratelimit.NewIPLimiter(ratelimit.IPProps{Interval: cfg.IPRateLimitInterval, Burst: cfg.IPRateLimitBurst}),
		DBLimiter:    ratelimit.NewDBLimiter(cfg.DBWriteMinInterval),
		Game:         counter.New(cfg.GameID, cfg.Limbo),
		Chat:         subsystems.NewMemChatService(100),
		Team:         subsystems.NewMemTeamService(),
		Player:       subsystems.NewMemPlayerService(),
		Invitation:   subsystems.NewMemInvitationService(),
		Leaderboard:  subsystems.NewMemLeaderboardService([]string{"daily"}, 10),
		Liveboard:    subsystems.NewMemLiveboardService(),
		System:       subsystems.NewMemSystemService(subsystems.ServerInfo{}),
		Metric:       subsystems.NewMemMetricService(),
		Trace:        trace,
	}

	eng := actor.NewEngine()
	pid := eng.Spawn(core.Props(deps))
	require.NotNil(t, pid)
	t.Cleanup(func() { eng.Shutdown(time.Second) })

	return eng, pid
}

func TestSubscribeReceivesSessionCreatedFirst(t *testing.T) {
	eng, pid := newTestCore(t)
	h := NewHandler(eng, pid, counter.DecodeCommand)

	srv := httptest.NewServer(websocket.Handler(h.Handle))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	ws, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err)
	defer ws.Close()

	var created core.SessionCreated
	require.NoError(t, websocket.JSON.Receive(ws, &created))
	assert.NotEmpty(t, created.PlayerID)
	assert.Equal(t, "arena-test", created.ArenaID)
}

func TestSubscribeSetAliasRoundTrips(t *testing.T) {
	eng, pid := newTestCore(t)
	h := NewHandler(eng, pid, counter.DecodeCommand)

	srv := httptest.NewServer(websocket.Handler(h.Handle))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	ws, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err)
	defer ws.Close()

	var created core.SessionCreated
	require.NoError(t, websocket.JSON.Receive(ws, &created))

	// drain the fixed initializer sequence before sending our own frame.
	for i := 0; i < 4; i++ {
		var discard json.RawMessage
		require.NoError(t, websocket.JSON.Receive(ws, &discard))
	}

	frame := inboundFrame{Type: "set_alias", Body: mustJSON(t, map[string]string{"alias": "nova"})}
	require.NoError(t, websocket.JSON.Send(ws, frame))

	var reply core.AliasSet
	require.NoError(t, websocket.JSON.Receive(ws, &reply))
	assert.Equal(t, "nova", reply.Alias)
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestAdminStatusEndpointRequiresToken(t *testing.T) {
	eng, pid := newTestCore(t)
	h := NewHandler(eng, pid, counter.DecodeCommand)

	req := httptest.NewRequest(http.MethodGet, "/admin/status", nil)
	rec := httptest.NewRecorder()
	h.handleAdminStatus(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
