// Package session defines the durable session store contract (spec §4.B)
// and its implementations.
package session

import "time"

// Item is the durable record keyed by (ArenaID, SessionID) (spec §4.B).
// Equality is full structural equality and is used by the persister to
// suppress redundant writes (spec §3 invariant 3), so every field must be
// comparable.
type Item struct {
	Alias             string
	ArenaID           string
	DateCreated       time.Time
	DatePrevious      time.Time
	DateRenewed       time.Time
	DateTerminated    *time.Time
	GameID            string
	PlayerID          string
	Plays             int
	PreviousSessionID *uint64
	Referrer          *string
	UserAgentID       *string
	ServerID          string
	SessionID         uint64
}

// Equal reports full structural equality, including pointer-field
// contents rather than pointer identity, so that two independently built
// Items representing the same logical record compare equal.
func (i Item) Equal(other Item) bool {
	if i.Alias != other.Alias ||
		i.ArenaID != other.ArenaID ||
		!i.DateCreated.Equal(other.DateCreated) ||
		!i.DatePrevious.Equal(other.DatePrevious) ||
		!i.DateRenewed.Equal(other.DateRenewed) ||
		i.GameID != other.GameID ||
		i.PlayerID != other.PlayerID ||
		i.Plays != other.Plays ||
		i.ServerID != other.ServerID ||
		i.SessionID != other.SessionID {
		return false
	}
	if !equalTimePtr(i.DateTerminated, other.DateTerminated) {
		return false
	}
	if !equalUint64Ptr(i.PreviousSessionID, other.PreviousSessionID) {
		return false
	}
	if !equalStringPtr(i.Referrer, other.Referrer) {
		return false
	}
	if !equalStringPtr(i.UserAgentID, other.UserAgentID) {
		return false
	}
	return true
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func equalUint64Ptr(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
