package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// MatchByBGATableID looks a match up by platform table id. Returns
// (nil, nil) when absent.
func (s *TxStore) MatchByBGATableID(ctx context.Context, tableID int64) (*Match, error) {
	m := &Match{}
	err := s.db.QueryRow(ctx, `
		SELECT id, bga_table_id, game_name, imported_at, created_at, updated_at
		FROM matches WHERE bga_table_id = $1`, tableID,
	).Scan(&m.ID, &m.BGATableID, &m.GameName, &m.ImportedAt, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan match: %w", err)
	}
	return m, nil
}

// CreateMatch inserts a match header and fills in its surrogate id.
func (s *TxStore) CreateMatch(ctx context.Context, m *Match) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO matches (bga_table_id, game_name)
		VALUES ($1, $2)
		RETURNING id, imported_at, created_at, updated_at`,
		m.BGATableID, m.GameName,
	).Scan(&m.ID, &m.ImportedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert match %d: %w", m.BGATableID, err)
	}
	return nil
}

// UpdateMatch overwrites the match header and stamps imported_at; callers
// replace the move timeline separately.
func (s *TxStore) UpdateMatch(ctx context.Context, m *Match) error {
	_, err := s.db.Exec(ctx, `
		UPDATE matches
		SET game_name = $2, imported_at = NOW(), updated_at = NOW()
		WHERE id = $1`,
		m.ID, m.GameName,
	)
	if err != nil {
		return fmt.Errorf("update match %d: %w", m.ID, err)
	}
	return nil
}

// DeleteMatchMoves removes every move owned by a match. Part of the
// full-replace contract for re-imported timelines.
func (s *TxStore) DeleteMatchMoves(ctx context.Context, matchID int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM match_moves WHERE match_id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("delete moves for match %d: %w", matchID, err)
	}
	return nil
}

// CreateMatchMove appends one move to a match timeline.
func (s *TxStore) CreateMatchMove(ctx context.Context, mv *MatchMove) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO match_moves (match_id, seq, move_no, player_name, datetime_local, datetime_excel, remaining_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		mv.MatchID, mv.Seq, mv.MoveNo, mv.PlayerName, mv.DatetimeLocal, mv.DatetimeExcel, mv.RemainingTime,
	).Scan(&mv.ID)
	if err != nil {
		return fmt.Errorf("insert move %d for match %d: %w", mv.Seq, mv.MatchID, err)
	}
	return nil
}

// MatchMoves returns a match's timeline in insertion order.
func (s *TxStore) MatchMoves(ctx context.Context, matchID int64) ([]*MatchMove, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, match_id, seq, move_no, player_name, datetime_local, datetime_excel, remaining_time
		FROM match_moves WHERE match_id = $1 ORDER BY seq`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()

	var moves []*MatchMove
	for rows.Next() {
		mv := &MatchMove{}
		if err := rows.Scan(&mv.ID, &mv.MatchID, &mv.Seq, &mv.MoveNo, &mv.PlayerName,
			&mv.DatetimeLocal, &mv.DatetimeExcel, &mv.RemainingTime); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		moves = append(moves, mv)
	}
	return moves, rows.Err()
}
