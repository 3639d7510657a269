package client

import "time"

// Channel is a handle to send outbound updates to one client (GLOSSARY:
// Channel). Dropping/Closing it tells the transport to tear down the
// underlying connection.
type Channel interface {
	// Send delivers update to the client. Implementations must preserve
	// per-channel ordering (spec §5). A non-nil error means the channel is
	// dead; callers must treat that as equivalent to a closed channel.
	Send(update interface{}) error
	// Close tears down the underlying transport connection.
	Close()
	// Identity distinguishes one channel instance from another so the
	// state machine can do the re-register tie-break by identity, not value
	// (spec §4.C "unregister compares channel identity").
	Identity() interface{}
}

// Kind enumerates the connection states of spec §4.C.
type Kind int

const (
	// Pending is allocated but not yet registered; expires after ~10s.
	Pending Kind = iota
	// Connected has exactly one live outbound channel bound.
	Connected
	// Limbo retains game presence across a brief disconnect.
	Limbo
	// Stale has no channel and is no longer "in game"; eligible for removal.
	Stale
)

func (k Kind) String() string {
	switch k {
	case Pending:
		return "Pending"
	case Connected:
		return "Connected"
	case Limbo:
		return "Limbo"
	case Stale:
		return "Stale"
	default:
		return "Unknown"
	}
}

// Status is the client connection state machine. Only one of Expiry
// (Pending/Limbo/Stale) or Channel (Connected) is meaningful at a time.
type Status struct {
	Kind    Kind
	Expiry  time.Time
	Channel Channel
}

// PendingStatus allocates a fresh Pending status expiring at now+ttl.
func PendingStatus(now time.Time, ttl time.Duration) Status {
	return Status{Kind: Pending, Expiry: now.Add(ttl)}
}

// ConnectedStatus binds ch as the one live channel.
func ConnectedStatus(ch Channel) Status {
	return Status{Kind: Connected, Channel: ch}
}

// LimboStatus marks the player as disconnected but still in-game until ttl.
func LimboStatus(now time.Time, ttl time.Duration) Status {
	return Status{Kind: Limbo, Expiry: now.Add(ttl)}
}

// StaleStatus marks the player as disconnected and out of game until ttl,
// after which it is eligible for removal.
func StaleStatus(now time.Time, ttl time.Duration) Status {
	return Status{Kind: Stale, Expiry: now.Add(ttl)}
}

// Expired reports whether a Pending/Limbo/Stale status has passed its
// expiry at the given instant. Always false for Connected.
func (s Status) Expired(now time.Time) bool {
	if s.Kind == Connected {
		return false
	}
	return !now.Before(s.Expiry)
}

// InGame reports whether the player still holds a presence in the game
// simulation (Connected or Limbo), per spec §3 invariant 4.
func (s Status) InGame() bool {
	return s.Kind == Connected || s.Kind == Limbo
}
