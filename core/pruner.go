package core

import (
	"fmt"
	"time"

	"arenacore/client"
)

// handlePrune implements spec §4.H. It never overlaps with a broadcaster
// Phase 2 fan-out or any other handler, by virtue of running on the same
// serialized mailbox (spec §4.H: "must run without contending with the
// broadcaster").
func (a *Actor) handlePrune() {
	now := time.Now()

	var toForget []client.PlayerID

	for id, rec := range a.records {
		switch rec.Status.Kind {

		case client.Connected:
			continue

		case client.Limbo:
			if !now.Before(rec.Status.Expiry) {
				rec.Status = client.StaleStatus(now, a.deps.Config.StaleExpiry)
				a.deps.Game.PlayerLeft(id)
				a.deps.Player.NotifyLeft(id)
				fmt.Printf("core: player %s limbo expired, now stale\n", id)
			}

		case client.Pending, client.Stale:
			if now.After(rec.Status.Expiry) {
				toForget = append(toForget, id)
			}
		}
	}

	for _, id := range toForget {
		a.forget(id)
	}
}
