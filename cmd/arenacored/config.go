package main

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// cliConfig holds every flag/env knob, translated into config.Config by
// toCoreConfig once parsed (env prefix ARENACORE_, matching the
// reference's PARTYBOX_ convention).
type cliConfig struct {
	bind    string
	port    int
	gameID  string
	arenaID string
	serverID string

	limbo           time.Duration
	staleExpiry     time.Duration
	pendingExpiry   time.Duration
	aliasAliveGrace time.Duration

	ipRateLimitInterval time.Duration
	ipRateLimitBurst    int
	dbWriteMinInterval  time.Duration

	databaseDSN      string
	databaseReadOnly bool

	traceLogPath       string
	maxTracesPerPlayer int
	maxReportedPlayers int

	tickInterval    time.Duration
	pruneInterval   time.Duration
	persistInterval time.Duration

	adminToken string

	verbose bool
}

func (c *cliConfig) validate() error {
	if c.port < 1 || c.port > 65535 {
		return errors.New("invalid port (must be between 1-65535 inclusive)")
	}
	if c.arenaID == "" {
		return errors.New("--arena-id must not be empty")
	}
	if c.databaseDSN == "" && !c.databaseReadOnly {
		return errors.New("--database-dsn is required unless --database-read-only is set")
	}
	return nil
}

func newRootCmd(cfg *cliConfig) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ARENACORE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "arenacored",
		Short:         "Session and fan-out core for a real-time multiplayer arena.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: ARENACORE_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: ARENACORE_PORT)")
	fs.StringVar(&cfg.gameID, "game-id", "arena", "which game this arena runs (env: ARENACORE_GAME_ID)")
	fs.StringVar(&cfg.arenaID, "arena-id", "", "arena identifier this server belongs to (env: ARENACORE_ARENA_ID)")
	fs.StringVar(&cfg.serverID, "server-id", "", "this server instance's id (env: ARENACORE_SERVER_ID)")

	fs.DurationVar(&cfg.limbo, "limbo", 15*time.Second, "grace period for a disconnected but in-game client (env: ARENACORE_LIMBO)")
	fs.DurationVar(&cfg.staleExpiry, "stale-expiry", 48*time.Hour, "how long a stale client is kept before removal (env: ARENACORE_STALE_EXPIRY)")
	fs.DurationVar(&cfg.pendingExpiry, "pending-expiry", 10*time.Second, "ttl for a not-yet-registered client (env: ARENACORE_PENDING_EXPIRY)")
	fs.DurationVar(&cfg.aliasAliveGrace, "alias-alive-grace", time.Second, "grace after connecting during which alias may still change (env: ARENACORE_ALIAS_ALIVE_GRACE)")

	fs.DurationVar(&cfg.ipRateLimitInterval, "ip-rate-limit-interval", time.Second, "per-ip admission token interval (env: ARENACORE_IP_RATE_LIMIT_INTERVAL)")
	fs.IntVar(&cfg.ipRateLimitBurst, "ip-rate-limit-burst", 5, "per-ip admission token burst (env: ARENACORE_IP_RATE_LIMIT_BURST)")
	fs.DurationVar(&cfg.dbWriteMinInterval, "db-write-min-interval", 30*time.Second, "minimum spacing between session-persist sweeps (env: ARENACORE_DB_WRITE_MIN_INTERVAL)")

	fs.StringVar(&cfg.databaseDSN, "database-dsn", "", "postgres connection string (env: ARENACORE_DATABASE_DSN)")
	fs.BoolVar(&cfg.databaseReadOnly, "database-read-only", false, "disable session persistence entirely (env: ARENACORE_DATABASE_READ_ONLY)")

	fs.StringVar(&cfg.traceLogPath, "trace-log-path", "", "file to append client trace reports to; empty logs to stderr (env: ARENACORE_TRACE_LOG_PATH)")
	fs.IntVar(&cfg.maxTracesPerPlayer, "max-traces-per-player", 25, "cap on Trace reports accepted per player (env: ARENACORE_MAX_TRACES_PER_PLAYER)")
	fs.IntVar(&cfg.maxReportedPlayers, "max-reported-players", 200, "cap on the per-client reported-player set (env: ARENACORE_MAX_REPORTED_PLAYERS)")

	fs.DurationVar(&cfg.tickInterval, "tick-interval", 50*time.Millisecond, "broadcaster tick period (env: ARENACORE_TICK_INTERVAL)")
	fs.DurationVar(&cfg.pruneInterval, "prune-interval", time.Second, "pruner sweep period (env: ARENACORE_PRUNE_INTERVAL)")
	fs.DurationVar(&cfg.persistInterval, "persist-interval", 30*time.Second, "session-persist sweep period (env: ARENACORE_PERSIST_INTERVAL)")

	fs.StringVar(&cfg.adminToken, "admin-token", "", "shared token gating /admin/status; empty disables it (env: ARENACORE_ADMIN_TOKEN)")

	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: ARENACORE_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, v.GetString(f.Name))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("arenacored v{{.Version}}\n")

	return cmd
}
