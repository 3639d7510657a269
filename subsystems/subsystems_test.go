package subsystems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenacore/client"
)

func TestMemPlayerServiceDeltaAndForget(t *testing.T) {
	s := NewMemPlayerService()

	_, _, _, ok := s.Delta(nil)
	assert.False(t, ok, "fresh roster has nothing to report")

	s.NotifyJoined("p1", "Nova")
	added, removed, realCount, ok := s.Delta(nil)
	require.True(t, ok)
	assert.Equal(t, 1, realCount)
	assert.Equal(t, []PlayerSummary{{ID: "p1", Alias: "Nova"}}, added)
	assert.Empty(t, removed)

	_, _, _, ok = s.Delta(nil)
	assert.False(t, ok, "delta is consumed, not re-reported")

	s.NotifyLeft("p1")
	_, removed, realCount, ok = s.Delta(nil)
	require.True(t, ok)
	assert.Equal(t, 0, realCount)
	assert.Equal(t, []client.PlayerID{"p1"}, removed)

	s.NotifyJoined("p2", "Echo")
	s.Forget("p2")
	assert.Empty(t, s.Initializer().Players)
}

func TestMemTeamServiceJoinLeaveDelta(t *testing.T) {
	s := NewMemTeamService()
	teamID := "red"

	_, err := s.HandleRequest("p1", TeamRequest{Join: &teamID})
	require.NoError(t, err)

	added, _, ok := s.Delta()
	require.True(t, ok)
	require.Len(t, added, 1)
	assert.Equal(t, []client.PlayerID{"p1"}, added[0].Members)

	init, found := s.Initializer("p1")
	require.True(t, found)
	assert.Equal(t, teamID, init.Teams[0].ID)

	members, _, _ := s.PerPlayer("p1")
	require.NotNil(t, members)
	assert.Equal(t, []client.PlayerID{"p1"}, members.Members)

	_, err = s.HandleRequest("p1", TeamRequest{Leave: true})
	require.NoError(t, err)
	_, removed, ok := s.Delta()
	require.True(t, ok)
	assert.Equal(t, []string{teamID}, removed)

	_, found = s.Initializer("p1")
	assert.False(t, found, "a player with no team gets no initializer (spec §4.E step 6)")
}

func TestMemChatServicePostAndDelta(t *testing.T) {
	s := NewMemChatService(10)

	_, err := s.HandleRequest("p1", ChatRequest{Text: "hi"})
	require.NoError(t, err)

	delta, ok := s.Delta("p2")
	require.True(t, ok)
	require.Len(t, delta.New, 1)
	assert.Equal(t, "hi", delta.New[0].Text)

	_, ok = s.Delta("p2")
	assert.False(t, ok, "delta cursor advances past what was already observed")

	init := s.Initializer("p3", []client.PlayerID{"p1", "p2"})
	require.Len(t, init.Recent, 1)

	_, ok = s.Delta("p3")
	assert.False(t, ok, "initializer also advances the cursor")
}

func TestMemInvitationServiceCreateExistsRedeem(t *testing.T) {
	s := NewMemInvitationService()

	reply, err := s.HandleRequest("owner", InvitationRequest{Create: true})
	require.NoError(t, err)
	id, ok := reply.(InvitationID)
	require.True(t, ok)
	assert.True(t, s.Exists(id))

	_, err = s.HandleRequest("owner", InvitationRequest{Redeem: &id})
	require.NoError(t, err)
	assert.False(t, s.Exists(id))
}

func TestMemInvitationServiceForgetCascades(t *testing.T) {
	s := NewMemInvitationService()
	reply, err := s.HandleRequest("owner", InvitationRequest{Create: true})
	require.NoError(t, err)
	id := reply.(InvitationID)

	s.Forget("owner")
	assert.False(t, s.Exists(id))
}

func TestMemLeaderboardServiceTopNAndOrdering(t *testing.T) {
	s := NewMemLeaderboardService([]string{"daily"}, 2)
	s.Record("daily", "p1", "A", 10)
	s.Record("daily", "p2", "B", 30)
	s.Record("daily", "p3", "C", 20)

	boards := s.Deltas()
	require.Len(t, boards, 1)
	require.Len(t, boards[0].Board, 2, "capped at topN")
	assert.Equal(t, client.PlayerID("p2"), boards[0].Board[0].PlayerID, "highest score first")
	assert.Equal(t, client.PlayerID("p3"), boards[0].Board[1].PlayerID)
}

func TestMemLiveboardServicePostClearDelta(t *testing.T) {
	s := NewMemLiveboardService()
	s.Post("p1", "found the secret room")

	delta, ok := s.Delta()
	require.True(t, ok)
	assert.Equal(t, []LiveboardEntry{{PlayerID: "p1", Headline: "found the secret room"}}, delta.Added)

	s.Clear("p1")
	delta, ok = s.Delta()
	require.True(t, ok)
	assert.Equal(t, []client.PlayerID{"p1"}, delta.Removed)
}

func TestMemSystemServiceUpsertRemoveInitializer(t *testing.T) {
	s := NewMemSystemService(ServerInfo{})

	_, ok := s.Initializer()
	assert.False(t, ok, "empty topology has no initializer")

	s.Upsert(ServerInfo{ServerID: "s1", Region: "us"})
	init, ok := s.Initializer()
	require.True(t, ok)
	require.Len(t, init.Added, 1)
	assert.Equal(t, "s1", init.Added[0].ServerID)

	update, ok := s.Delta()
	require.True(t, ok)
	assert.Equal(t, "s1", update.Added[0].ServerID)

	s.Remove("s1")
	update, ok = s.Delta()
	require.True(t, ok)
	assert.Equal(t, []string{"s1"}, update.Removed)
}

func TestMemMetricServiceRecordsAuthStarts(t *testing.T) {
	m := NewMemMetricService()
	m.RecordAuthStart("p1", true, false)
	m.RecordAuthStart("p2", false, true)
	m.RecordAuthStart("p3", false, false)

	invitation, priorSession, cold := m.Snapshot()
	assert.Equal(t, 1, invitation)
	assert.Equal(t, 1, priorSession)
	assert.Equal(t, 2, cold)
}
