package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const gameColumns = `id, bga_game_id, name, display_name, status, premium, created_at, updated_at`

func scanGame(row pgx.Row) (*Game, error) {
	g := &Game{}
	err := row.Scan(&g.ID, &g.BGAGameID, &g.Name, &g.DisplayName, &g.Status, &g.Premium, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan game: %w", err)
	}
	return g, nil
}

// GameByBGAID looks a game up by its platform id. Returns (nil, nil) when
// no such game exists.
func (s *TxStore) GameByBGAID(ctx context.Context, bgaID int64) (*Game, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE bga_game_id = $1`, bgaID)
	return scanGame(row)
}

// GameByName looks a game up by internal name, the secondary key used for
// placeholder resolution. Returns (nil, nil) when absent.
func (s *TxStore) GameByName(ctx context.Context, name string) (*Game, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE name = $1`, name)
	return scanGame(row)
}

// MinPlaceholderGameID returns the smallest (most negative) placeholder id
// currently stored. ok is false when no placeholders exist yet.
func (s *TxStore) MinPlaceholderGameID(ctx context.Context) (int64, bool, error) {
	var min *int64
	err := s.db.QueryRow(ctx,
		`SELECT MIN(bga_game_id) FROM games WHERE bga_game_id < 0`).Scan(&min)
	if err != nil {
		return 0, false, fmt.Errorf("min placeholder game id: %w", err)
	}
	if min == nil {
		return 0, false, nil
	}
	return *min, true, nil
}

// CreateGame inserts a game and fills in its surrogate id and timestamps.
func (s *TxStore) CreateGame(ctx context.Context, g *Game) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO games (bga_game_id, name, display_name, status, premium)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		g.BGAGameID, g.Name, g.DisplayName, g.Status, g.Premium,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert game %q: %w", g.Name, err)
	}
	return nil
}

// UpdateGame overwrites all mutable attributes and stamps updated_at.
func (s *TxStore) UpdateGame(ctx context.Context, g *Game) error {
	_, err := s.db.Exec(ctx, `
		UPDATE games
		SET name = $2, display_name = $3, status = $4, premium = $5, updated_at = NOW()
		WHERE id = $1`,
		g.ID, g.Name, g.DisplayName, g.Status, g.Premium,
	)
	if err != nil {
		return fmt.Errorf("update game %d: %w", g.ID, err)
	}
	return nil
}

// ListGames returns catalog entries ordered by display name.
func (s *TxStore) ListGames(ctx context.Context, limit, offset int) ([]*Game, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+gameColumns+` FROM games ORDER BY display_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []*Game
	for rows.Next() {
		g := &Game{}
		if err := rows.Scan(&g.ID, &g.BGAGameID, &g.Name, &g.DisplayName, &g.Status, &g.Premium, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
