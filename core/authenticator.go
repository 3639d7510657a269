package core

import (
	"context"
	"fmt"
	"time"

	"arenacore/actor"
	"arenacore/client"
	"arenacore/session"
)

// storeCallTimeout bounds the one suspension point authentication holds
// (spec §5: "authentication holds no locks across its DB read").
const storeCallTimeout = 3 * time.Second

// handleAuthenticate implements spec §4.D. Steps 1-2 (rate limit, in-memory
// scan) run synchronously since they touch only actor-owned state; a store
// read (step 3) is pushed to a goroutine so the mailbox isn't blocked on
// I/O, and the rest of the algorithm resumes via authenticateContinuation
// once that read settles (spec §5 suspension-point rule).
func (a *Actor) handleAuthenticate(ctx actor.Context, req AuthenticateRequest) {
	if req.IP != nil {
		if err := a.deps.IPLimiter.Allow(*req.IP); err != nil {
			ctx.Reply(AuthenticateReply{Err: err})
			return
		}
	}

	// Step 2: arena matches and an in-memory client already holds this
	// session — reuse it, no DB read (spec §4.D step 2).
	if req.Session != nil && req.Session.ArenaID == a.deps.ArenaID {
		if rec := a.recordBySession(req.Session.SessionID); rec != nil {
			reused := rec.PlayerID
			ctx.Reply(a.finishAuthenticate(req, &reused, nil))
			return
		}
	}

	// Step 4: no session presented at all — skip the store entirely.
	if req.Session == nil {
		ctx.Reply(a.finishAuthenticate(req, nil, nil))
		return
	}

	// Step 3: fetch from store. This is the algorithm's one suspension
	// point; nothing below touches the table until the continuation runs
	// back on this actor's own goroutine.
	requestID := ctx.RequestID()
	self := ctx.Self()
	eng := ctx.Engine()
	store := a.deps.SessionStore
	sess := *req.Session
	reqCopy := req

	go func() {
		storeCtx, cancel := context.WithTimeout(context.Background(), storeCallTimeout)
		defer cancel()

		item, err := store.Get(storeCtx, sess.ArenaID, uint64(sess.SessionID))

		var found *sessionLookup
		switch err {
		case nil:
			found = &sessionLookup{item: item, fromStore: true}
		case session.ErrNotFound:
			// no prior session; found stays nil (spec §7: not an error).
		default:
			// StoreError: logged and treated as "no prior session" for
			// authentication (spec §7).
			fmt.Printf("core: get_session failed for arena=%s session=%d: %v\n", sess.ArenaID, sess.SessionID, err)
		}

		eng.Send(self, &authenticateContinuation{
			req:       reqCopy,
			requestID: requestID,
			found:     found,
		}, nil)
	}()
}

// handleAuthenticateContinuation resumes an AuthenticateRequest once its
// store read has resolved. Requests that skip the store read are answered
// directly by handleAuthenticate and never reach here.
func (a *Actor) handleAuthenticateContinuation(eng *actor.Engine, msg *authenticateContinuation) {
	reply := a.finishAuthenticate(msg.req, msg.reused, msg.found)
	eng.Resolve(msg.requestID, reply)
}

// finishAuthenticate implements spec §4.D steps 5-7. Exactly one of
// reused/found is non-nil, or neither (fresh allocation).
func (a *Actor) finishAuthenticate(req AuthenticateRequest, reused *client.PlayerID, found *sessionLookup) AuthenticateReply {
	now := time.Now()

	hadInvitation := req.InvitationID != nil && a.deps.Invitation.Exists(*req.InvitationID)
	hadPriorSession := reused != nil || found != nil

	var playerID client.PlayerID
	var sessionID client.SessionID
	var previousPlays int
	var referrer, userAgent *string

	switch {
	case reused != nil:
		playerID = *reused
		sessionID = a.records[playerID].SessionID

	case found != nil:
		playerID = client.PlayerID(found.item.PlayerID)
		sessionID = client.SessionID(found.item.SessionID)
		previousPlays = found.item.Plays
		referrer = found.item.Referrer
		userAgent = found.item.UserAgentID

	default:
		sessionID = a.newUniqueSessionID()
		playerID = a.newUniquePlayerID()
	}

	a.deps.Metric.RecordAuthStart(playerID, hadInvitation, hadPriorSession)

	if rec, exists := a.records[playerID]; exists {
		rec.Metrics.DateRenewed = now
		return AuthenticateReply{PlayerID: playerID}
	}

	rec := &Record{
		PlayerID:  playerID,
		SessionID: sessionID,
		Alias:     a.deps.Game.DefaultAlias(),
		Status:    client.PendingStatus(now, a.deps.Config.PendingExpiry),
		Reported:  make(map[client.PlayerID]struct{}),
		Data:      a.deps.Game.DefaultClientData(),
		Metrics: Metrics{
			DateCreated:   now,
			DateRenewed:   now,
			PreviousPlays: previousPlays,
			Referrer:      referrer,
			UserAgentID:   userAgent,
		},
	}
	if req.Referrer != nil {
		rec.Metrics.Referrer = req.Referrer
	}
	if req.UserAgentID != nil {
		rec.Metrics.UserAgentID = req.UserAgentID
	}
	a.insert(rec)

	return AuthenticateReply{PlayerID: playerID}
}
