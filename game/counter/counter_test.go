package counter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceJoinedLeftTracksPresence(t *testing.T) {
	s := New("arena", time.Second)
	assert.Equal(t, "arena", s.GameID())
	assert.Equal(t, time.Second, s.Limbo())

	s.PlayerJoined("p1")
	assert.True(t, s.present["p1"])

	s.PlayerLeft("p1")
	assert.False(t, s.present["p1"])
}

func TestServicePlayerCommandEchoesBump(t *testing.T) {
	s := New("arena", time.Second)

	reply, err := s.PlayerCommand("p1", Command{Bump: 7})
	require.NoError(t, err)
	assert.Equal(t, Update{Ticks: 7}, reply)

	_, err = s.PlayerCommand("p1", "not a command")
	assert.Error(t, err)
}

func TestServiceGetClientUpdateAccumulatesPerPlayerData(t *testing.T) {
	s := New("arena", time.Second)
	var data interface{}

	update, ok := s.GetClientUpdate(1, "p1", &data)
	require.True(t, ok)
	assert.Equal(t, Update{Ticks: 1}, update)

	update, ok = s.GetClientUpdate(2, "p1", &data)
	require.True(t, ok)
	assert.Equal(t, Update{Ticks: 2}, update, "scratch data persists across calls via the *interface{} pointer")
}

func TestDecodeCommandRoundTrips(t *testing.T) {
	cmd, err := DecodeCommand([]byte(`{"Bump": 3}`))
	require.NoError(t, err)
	assert.Equal(t, Command{Bump: 3}, cmd)

	_, err = DecodeCommand([]byte(`not json`))
	assert.Error(t, err)
}
