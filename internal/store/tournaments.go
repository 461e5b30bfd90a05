package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TournamentByBGAID looks a tournament up by platform id. Returns
// (nil, nil) when absent.
func (s *TxStore) TournamentByBGAID(ctx context.Context, bgaID int64) (*Tournament, error) {
	t := &Tournament{}
	err := s.db.QueryRow(ctx, `
		SELECT id, bga_tournament_id, name, game_name, start_time, end_time,
			rounds, round_limit, total_matches, timeout_matches, player_count,
			created_at, updated_at
		FROM tournaments WHERE bga_tournament_id = $1`, bgaID,
	).Scan(&t.ID, &t.BGATournamentID, &t.Name, &t.GameName, &t.StartTime, &t.EndTime,
		&t.Rounds, &t.RoundLimit, &t.TotalMatches, &t.TimeoutMatches, &t.PlayerCount,
		&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan tournament: %w", err)
	}
	return t, nil
}

// CreateTournament inserts a tournament and fills in its surrogate id.
func (s *TxStore) CreateTournament(ctx context.Context, t *Tournament) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO tournaments (bga_tournament_id, name, game_name, start_time, end_time,
			rounds, round_limit, total_matches, timeout_matches, player_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		t.BGATournamentID, t.Name, t.GameName, t.StartTime, t.EndTime,
		t.Rounds, t.RoundLimit, t.TotalMatches, t.TimeoutMatches, t.PlayerCount,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert tournament %d: %w", t.BGATournamentID, err)
	}
	return nil
}

// UpdateTournament overwrites all mutable attributes and stamps updated_at.
func (s *TxStore) UpdateTournament(ctx context.Context, t *Tournament) error {
	_, err := s.db.Exec(ctx, `
		UPDATE tournaments
		SET name = $2, game_name = $3, start_time = $4, end_time = $5,
			rounds = $6, round_limit = $7, total_matches = $8, timeout_matches = $9,
			player_count = $10, updated_at = NOW()
		WHERE id = $1`,
		t.ID, t.Name, t.GameName, t.StartTime, t.EndTime,
		t.Rounds, t.RoundLimit, t.TotalMatches, t.TimeoutMatches, t.PlayerCount,
	)
	if err != nil {
		return fmt.Errorf("update tournament %d: %w", t.ID, err)
	}
	return nil
}

// DeleteTournamentMatches removes every match owned by a tournament; their
// players go with them via ON DELETE CASCADE. Part of the full-replace
// contract.
func (s *TxStore) DeleteTournamentMatches(ctx context.Context, tournamentID int64) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM tournament_matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("delete matches for tournament %d: %w", tournamentID, err)
	}
	return nil
}

// CreateTournamentMatch inserts a tournament match and fills in its
// surrogate id so player rows can reference it.
func (s *TxStore) CreateTournamentMatch(ctx context.Context, tm *TournamentMatch) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO tournament_matches (tournament_id, bga_table_id, is_timeout, progress)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		tm.TournamentID, tm.BGATableID, tm.IsTimeout, tm.Progress,
	).Scan(&tm.ID)
	if err != nil {
		return fmt.Errorf("insert tournament match %d: %w", tm.BGATableID, err)
	}
	return nil
}

// CreateTournamentMatchPlayer inserts one player result row.
func (s *TxStore) CreateTournamentMatchPlayer(ctx context.Context, p *TournamentMatchPlayer) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO tournament_match_players (tournament_match_id, player_name, remaining_time_seconds, points)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		p.TournamentMatchID, p.PlayerName, p.RemainingTimeSeconds, p.Points,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert tournament match player %q: %w", p.PlayerName, err)
	}
	return nil
}
