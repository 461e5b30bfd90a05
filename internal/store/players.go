package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const playerColumns = `id, bga_player_id, name, xp, karma, matches_total, wins_total,
	abandoned, timeout, recent_matches, last_seen_days, created_at, updated_at`

func scanPlayer(row pgx.Row) (*Player, error) {
	p := &Player{}
	err := row.Scan(&p.ID, &p.BGAPlayerID, &p.Name, &p.XP, &p.Karma, &p.MatchesTotal, &p.WinsTotal,
		&p.Abandoned, &p.Timeout, &p.RecentMatches, &p.LastSeenDays, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return p, nil
}

// PlayerByBGAID looks a player up by platform id. Returns (nil, nil) when
// absent.
func (s *TxStore) PlayerByBGAID(ctx context.Context, bgaID int64) (*Player, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE bga_player_id = $1`, bgaID)
	return scanPlayer(row)
}

// CreatePlayer inserts a player and fills in its surrogate id and
// timestamps.
func (s *TxStore) CreatePlayer(ctx context.Context, p *Player) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO players (bga_player_id, name, xp, karma, matches_total, wins_total,
			abandoned, timeout, recent_matches, last_seen_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		p.BGAPlayerID, p.Name, p.XP, p.Karma, p.MatchesTotal, p.WinsTotal,
		p.Abandoned, p.Timeout, p.RecentMatches, p.LastSeenDays,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert player %q: %w", p.Name, err)
	}
	return nil
}

// UpdatePlayer overwrites all mutable attributes and stamps updated_at.
func (s *TxStore) UpdatePlayer(ctx context.Context, p *Player) error {
	_, err := s.db.Exec(ctx, `
		UPDATE players
		SET name = $2, xp = $3, karma = $4, matches_total = $5, wins_total = $6,
			abandoned = $7, timeout = $8, recent_matches = $9, last_seen_days = $10,
			updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.XP, p.Karma, p.MatchesTotal, p.WinsTotal,
		p.Abandoned, p.Timeout, p.RecentMatches, p.LastSeenDays,
	)
	if err != nil {
		return fmt.Errorf("update player %d: %w", p.ID, err)
	}
	return nil
}

// ListPlayers returns players ordered by name.
func (s *TxStore) ListPlayers(ctx context.Context, limit, offset int) ([]*Player, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+playerColumns+` FROM players ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []*Player
	for rows.Next() {
		p := &Player{}
		if err := rows.Scan(&p.ID, &p.BGAPlayerID, &p.Name, &p.XP, &p.Karma, &p.MatchesTotal, &p.WinsTotal,
			&p.Abandoned, &p.Timeout, &p.RecentMatches, &p.LastSeenDays, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// PlayerGameStatFor fetches the per-game stat row for a (player, game)
// pair. Returns (nil, nil) when absent.
func (s *TxStore) PlayerGameStatFor(ctx context.Context, playerID, gameID int64) (*PlayerGameStat, error) {
	st := &PlayerGameStat{}
	err := s.db.QueryRow(ctx, `
		SELECT id, player_id, game_id, elo, rank, played, won, imported_at, created_at, updated_at
		FROM player_game_stats
		WHERE player_id = $1 AND game_id = $2`,
		playerID, gameID,
	).Scan(&st.ID, &st.PlayerID, &st.GameID, &st.Elo, &st.Rank, &st.Played, &st.Won,
		&st.ImportedAt, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan player game stat: %w", err)
	}
	return st, nil
}

// CreatePlayerGameStat inserts a per-game stat row.
func (s *TxStore) CreatePlayerGameStat(ctx context.Context, st *PlayerGameStat) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO player_game_stats (player_id, game_id, elo, rank, played, won)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, imported_at, created_at, updated_at`,
		st.PlayerID, st.GameID, st.Elo, st.Rank, st.Played, st.Won,
	).Scan(&st.ID, &st.ImportedAt, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert player game stat: %w", err)
	}
	return nil
}

// UpdatePlayerGameStat overwrites a stat row and stamps both imported_at
// and updated_at.
func (s *TxStore) UpdatePlayerGameStat(ctx context.Context, st *PlayerGameStat) error {
	_, err := s.db.Exec(ctx, `
		UPDATE player_game_stats
		SET elo = $2, rank = $3, played = $4, won = $5, imported_at = NOW(), updated_at = NOW()
		WHERE id = $1`,
		st.ID, st.Elo, st.Rank, st.Played, st.Won,
	)
	if err != nil {
		return fmt.Errorf("update player game stat %d: %w", st.ID, err)
	}
	return nil
}
