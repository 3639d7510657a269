package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is a pgx-backed durable Store. Query/scan shape follows the
// udisondev-la2go reference's internal/db/character_repository.go:
// QueryRow + explicit column scan + pgx.ErrNoRows treated as "not found",
// not an error.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore wraps an already-connected pool. Run Migrate (the goose
// migrations in session/migrations) before first use.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Get(ctx context.Context, arenaID string, sessionID uint64) (Item, error) {
	const query = `
		SELECT alias, arena_id, date_created, date_previous, date_renewed,
		       date_terminated, game_id, player_id, plays, previous_session_id,
		       referrer, user_agent_id, server_id, session_id
		FROM session_items
		WHERE arena_id = $1 AND session_id = $2
	`

	var item Item
	var sessionIDSigned int64
	var previousSessionID *int64
	err := s.pool.QueryRow(ctx, query, arenaID, int64(sessionID)).Scan(
		&item.Alias, &item.ArenaID, &item.DateCreated, &item.DatePrevious, &item.DateRenewed,
		&item.DateTerminated, &item.GameID, &item.PlayerID, &item.Plays, &previousSessionID,
		&item.Referrer, &item.UserAgentID, &item.ServerID, &sessionIDSigned,
	)
	if err == pgx.ErrNoRows {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("session: querying (%s, %d): %w", arenaID, sessionID, err)
	}

	item.SessionID = uint64(sessionIDSigned)
	if previousSessionID != nil {
		v := uint64(*previousSessionID)
		item.PreviousSessionID = &v
	}
	return item, nil
}

func (s *PGStore) Put(ctx context.Context, item Item) error {
	const query = `
		INSERT INTO session_items
			(alias, arena_id, date_created, date_previous, date_renewed, date_terminated,
			 game_id, player_id, plays, previous_session_id, referrer, user_agent_id,
			 server_id, session_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (arena_id, session_id) DO UPDATE SET
			alias = EXCLUDED.alias,
			date_previous = EXCLUDED.date_previous,
			date_renewed = EXCLUDED.date_renewed,
			date_terminated = EXCLUDED.date_terminated,
			plays = EXCLUDED.plays,
			previous_session_id = EXCLUDED.previous_session_id,
			referrer = EXCLUDED.referrer,
			user_agent_id = EXCLUDED.user_agent_id,
			server_id = EXCLUDED.server_id
	`

	var previousSessionID *int64
	if item.PreviousSessionID != nil {
		v := int64(*item.PreviousSessionID)
		previousSessionID = &v
	}

	_, err := s.pool.Exec(ctx, query,
		item.Alias, item.ArenaID, item.DateCreated, item.DatePrevious, item.DateRenewed, item.DateTerminated,
		item.GameID, item.PlayerID, item.Plays, previousSessionID, item.Referrer, item.UserAgentID,
		item.ServerID, int64(item.SessionID),
	)
	if err != nil {
		return fmt.Errorf("session: writing (%s, %d): %w", item.ArenaID, item.SessionID, err)
	}
	return nil
}
