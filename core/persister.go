package core

import (
	"context"
	"fmt"
	"sync"

	"arenacore/actor"
	"arenacore/client"
	"arenacore/session"
)

// fakeServerID substitutes for an unknown server_id when the store is
// read-only, so the diff-suppression comparison in step 2 still has a
// stable value to compare against (spec §4.I step 1).
const fakeServerID = "read-only-server"

// handlePersist implements spec §4.I. Store writes are the suspension
// point: they're fired from a detached goroutine so the mailbox is never
// blocked on I/O (spec §5), mirroring how handleAuthenticate defers its
// own store read.
func (a *Actor) handlePersist(eng *actor.Engine) {
	serverID := a.deps.Config.ServerID
	if serverID == "" {
		if !a.deps.Config.DatabaseReadOnly {
			return
		}
		serverID = fakeServerID
	}

	if !a.deps.DBLimiter.Allow() {
		return
	}

	type write struct {
		id   client.PlayerID
		item session.Item
	}
	var writes []write

	for id, rec := range a.records {
		candidate := session.Item{
			Alias:        rec.Alias,
			ArenaID:      a.deps.ArenaID,
			DateCreated:  rec.Metrics.DateCreated,
			DatePrevious: rec.Metrics.DateCreated,
			DateRenewed:  rec.Metrics.DateRenewed,
			GameID:       a.deps.Game.GameID(),
			PlayerID:     string(id),
			Plays:        rec.Metrics.Plays,
			Referrer:     rec.Metrics.Referrer,
			UserAgentID:  rec.Metrics.UserAgentID,
			ServerID:     serverID,
			SessionID:    uint64(rec.SessionID),
		}

		if rec.SessionItem != nil && rec.SessionItem.Equal(candidate) {
			continue
		}
		rec.SessionItem = &candidate

		if a.deps.Config.DatabaseReadOnly {
			continue
		}
		writes = append(writes, write{id: id, item: candidate})
	}

	if len(writes) == 0 {
		return
	}

	store := a.deps.SessionStore
	go func() {
		var wg sync.WaitGroup
		for _, w := range writes {
			wg.Add(1)
			go func(w write) {
				defer wg.Done()
				ctx, cancel := context.WithTimeout(context.Background(), storeCallTimeout)
				defer cancel()
				if err := store.Put(ctx, w.item); err != nil {
					fmt.Printf("core: put_session failed for %s: %v\n", w.id, err)
				}
			}(w)
		}
		wg.Wait()
	}()
}
