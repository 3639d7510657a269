package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItem() Item {
	now := time.Now().UTC().Truncate(time.Second)
	return Item{
		Alias:       "Neo",
		ArenaID:     "arena-1",
		GameID:      "pongo",
		PlayerID:    "player-1",
		ServerID:    "server-1",
		SessionID:   1234,
		Plays:       3,
		DateCreated: now,
		DatePrevious: now,
		DateRenewed: now,
	}
}

func TestItemEqualIsStructural(t *testing.T) {
	a := sampleItem()
	b := sampleItem()
	assert.True(t, a.Equal(b))

	b.Plays = 4
	assert.False(t, a.Equal(b))
}

func TestItemEqualHandlesNilPointers(t *testing.T) {
	a := sampleItem()
	b := sampleItem()
	assert.True(t, a.Equal(b))

	referrer := "google"
	b.Referrer = &referrer
	assert.False(t, a.Equal(b))

	a.Referrer = &referrer
	assert.True(t, a.Equal(b))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	item := sampleItem()

	_, err := store.Get(ctx, item.ArenaID, item.SessionID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, item))

	got, err := store.Get(ctx, item.ArenaID, item.SessionID)
	require.NoError(t, err)
	assert.True(t, item.Equal(got))
}
