package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"arenacore/actor"
	"arenacore/config"
	"arenacore/core"
	"arenacore/game/counter"
	"arenacore/ratelimit"
	"arenacore/session"
	"arenacore/subsystems"
	"arenacore/transport"
)

// run wires every dependency and blocks until the process is signaled to
// stop, mirroring the reference's ServePage: build config, build the
// store, spawn the actor, start the server, wait.
func run(ctx context.Context, cli *cliConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := toCoreConfig(cli)

	store, closeStore, err := openStore(ctx, cli)
	if err != nil {
		return err
	}
	defer closeStore()

	trace, err := core.NewTraceWriter(cfg.TraceLogPath)
	if err != nil {
		return fmt.Errorf("arenacored: opening trace log: %w", err)
	}
	defer trace.Close()

	deps := core.Dependencies{
		Config:          cfg,
		ArenaID:         cli.arenaID,
		SessionStore:    store,
		IPLimiter:       ratelimit.NewIPLimiter(ratelimit.IPProps{Interval: cfg.IPRateLimitInterval, Burst: cfg.IPRateLimitBurst}),
		DBLimiter:       ratelimit.NewDBLimiter(cfg.DBWriteMinInterval),
		Game:            counter.New(cfg.GameID, cfg.Limbo),
		Chat:            subsystems.NewMemChatService(200),
		Team:            subsystems.NewMemTeamService(),
		Player:          subsystems.NewMemPlayerService(),
		Invitation:      subsystems.NewMemInvitationService(),
		Leaderboard:     subsystems.NewMemLeaderboardService([]string{"daily", "all-time"}, 50),
		Liveboard:       subsystems.NewMemLiveboardService(),
		System:          subsystems.NewMemSystemService(subsystems.ServerInfo{ServerID: cli.serverID}),
		Metric:          subsystems.NewMemMetricService(),
		Trace:           trace,
		TickInterval:    cli.tickInterval,
		PruneInterval:   cli.pruneInterval,
		PersistInterval: cli.persistInterval,
	}

	engine := actor.NewEngine()
	corePID := engine.Spawn(core.Props(deps))
	if corePID == nil {
		return fmt.Errorf("arenacored: failed to spawn core actor")
	}
	time.Sleep(50 * time.Millisecond) // let Started finish before traffic arrives

	handler := transport.NewHandler(engine, corePID, counter.DecodeCommand)
	mux := transport.NewMux(handler)

	addr := fmt.Sprintf("%s:%d", cli.bind, cli.port)
	srv := &http.Server{Addr: addr, Handler: mux}

	serveErr := make(chan error, 1)
	go func() {
		fmt.Printf("arenacored: listening on %s (arena=%s game=%s)\n", addr, cli.arenaID, cfg.GameID)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		fmt.Println("arenacored: shutting down")
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("arenacored: serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	engine.Shutdown(5 * time.Second)

	return nil
}

// openStore connects to Postgres and applies migrations, or falls back to
// an in-memory store when --database-read-only is set without a dsn
// (spec §4.I, §6 database_read_only).
func openStore(ctx context.Context, cli *cliConfig) (session.Store, func(), error) {
	if cli.databaseDSN == "" {
		return session.NewMemoryStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cli.databaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("arenacored: connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("arenacored: pinging database: %w", err)
	}

	db, err := sql.Open("pgx", cli.databaseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("arenacored: opening migration connection: %w", err)
	}
	if err := session.Migrate(db); err != nil {
		db.Close()
		pool.Close()
		return nil, nil, fmt.Errorf("arenacored: running migrations: %w", err)
	}
	_ = db.Close()

	return session.NewPGStore(pool), pool.Close, nil
}

func toCoreConfig(cli *cliConfig) config.Config {
	return config.Config{
		GameID:              cli.gameID,
		Limbo:               cli.limbo,
		StaleExpiry:         cli.staleExpiry,
		PendingExpiry:       cli.pendingExpiry,
		AliasAliveGrace:     cli.aliasAliveGrace,
		IPRateLimitInterval: cli.ipRateLimitInterval,
		IPRateLimitBurst:    cli.ipRateLimitBurst,
		DBWriteMinInterval:  cli.dbWriteMinInterval,
		DatabaseReadOnly:    cli.databaseReadOnly,
		TraceLogPath:        cli.traceLogPath,
		MaxTracesPerPlayer:  cli.maxTracesPerPlayer,
		MaxReportedPlayers:  cli.maxReportedPlayers,
		ServerID:            cli.serverID,
		AdminToken:          cli.adminToken,
	}
}
