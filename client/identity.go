// Package client holds the per-player client record and its connection
// state machine (spec §3, §4.C).
package client

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/google/uuid"
)

// PlayerID identifies a player (real or bot) across the whole arena.
// Bots are distinguished by their id but never hold a client record
// (spec §3 invariant 5).
type PlayerID string

// NewPlayerID allocates a fresh, process-unique player id.
func NewPlayerID() PlayerID {
	return PlayerID(uuid.NewString())
}

// SessionID is the opaque, unguessable 64-bit identifier a returning
// client presents to reclaim its player id (spec §3, GLOSSARY).
type SessionID uint64

// NewSessionID draws a fresh random session id from a CSPRNG. Session ids
// must be unguessable (spec §1 Non-goals: "no cryptographic
// authentication... sessions are unguessable random identifiers"), which
// rules out math/rand.
func NewSessionID() SessionID {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is a fatal environment problem; a zero
		// session id would violate uniqueness, so panic rather than limp on.
		panic("client: crypto/rand unavailable: " + err.Error())
	}
	return SessionID(binary.BigEndian.Uint64(buf[:]))
}
