// Package config holds the process-wide configuration of spec §6,
// structured after the teacher's utils/config.go Config/DefaultConfig pair.
package config

import "time"

// Config is every knob the core needs. Field names mirror spec §6 so the
// mapping from spec to code stays obvious.
type Config struct {
	// GameID identifies which game this arena is running (spec §6 GAME_ID).
	GameID string

	// Limbo is how long a disconnected-but-in-game player is held before
	// moving to Stale (spec §3, game-defined LIMBO).
	Limbo time.Duration

	// StaleExpiry is how long a Stale client is kept before removal.
	// Spec §3/§6: 75s in debug mode, 48h in release.
	StaleExpiry time.Duration

	// PendingExpiry is the TTL of a freshly allocated, not-yet-registered
	// client (spec §3: ~10s).
	PendingExpiry time.Duration

	// AliasAliveGrace is how long after becoming Connected a player may
	// still change alias (spec §3 invariant 6: "alive for >1s blocks
	// alias change").
	AliasAliveGrace time.Duration

	// IPRateLimit configures the per-IP admission limiter (spec §4.A).
	IPRateLimitInterval time.Duration
	IPRateLimitBurst    int

	// DBWriteMinInterval is the single-token database write limiter's
	// minimum spacing (spec §4.A: 30s).
	DBWriteMinInterval time.Duration

	// DatabaseReadOnly disables put_session calls entirely (spec §4.I,
	// §6 database_read_only).
	DatabaseReadOnly bool

	// TraceLogPath is where Client.Trace messages are appended. Empty
	// means fall back to the process log (spec §6 trace_log_path?).
	TraceLogPath string

	// MaxTracesPerPlayer bounds how many Trace reports one player may
	// submit (spec §3 "traces... bounded at 25").
	MaxTracesPerPlayer int

	// MaxReportedPlayers bounds the "reported" set per client (spec §3:
	// "bounded growth bounded by N players").
	MaxReportedPlayers int

	// ServerID identifies this server instance for SessionItem/topology
	// (spec §4.I, §6).
	ServerID string

	// AdminToken gates the arena-wide operator status surface (supplemented
	// from original_source/server/src/main.rs's AdminState/AdminRequest
	// pair). Empty disables the surface entirely — there is no default
	// token, unlike the original's hardcoded AdminState::AUTH.
	AdminToken string
}

// DefaultConfig returns release-mode defaults.
func DefaultConfig() Config {
	return Config{
		GameID:              "arena",
		Limbo:               15 * time.Second,
		StaleExpiry:         48 * time.Hour,
		PendingExpiry:       10 * time.Second,
		AliasAliveGrace:     1 * time.Second,
		IPRateLimitInterval: time.Second,
		IPRateLimitBurst:    5,
		DBWriteMinInterval:  30 * time.Second,
		DatabaseReadOnly:    false,
		MaxTracesPerPlayer:  25,
		MaxReportedPlayers:  200,
		ServerID:            "server-1",
	}
}

// FastConfig is DefaultConfig with the "debug" timings spec §3 calls out
// (75s STALE_EXPIRY instead of 48h), matching the teacher's
// FastGameConfig() convention for tests that can't wait a day.
func FastConfig() Config {
	cfg := DefaultConfig()
	cfg.StaleExpiry = 75 * time.Second
	return cfg
}

// DefaultAlias returns the alias assigned to a freshly allocated client
// before it ever calls SetAlias (spec §6 default_alias()).
func (c Config) DefaultAlias() string {
	return "Guest"
}
