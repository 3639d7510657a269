package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when no item exists for the key.
var ErrNotFound = errors.New("session: not found")

// Store is the durable session store contract (spec §4.B). Both methods
// are async (context-bound) because they are the only suspension points
// the authenticator/persister hold (spec §5).
type Store interface {
	// Get fetches the session item for (arenaID, sessionID). Returns
	// ErrNotFound (not an error the caller should log loudly) when absent.
	Get(ctx context.Context, arenaID string, sessionID uint64) (Item, error)
	// Put durably writes item, keyed by (item.ArenaID, item.SessionID).
	Put(ctx context.Context, item Item) error
}
